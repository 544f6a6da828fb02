package paymentservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrPaymentRejected возвращается, когда платежный сервис отклонил создание сессии
	ErrPaymentRejected = errors.New("paymentservice client: checkout session rejected")

	// ErrServiceUnavailable возвращается, когда платежный сервис недоступен
	ErrServiceUnavailable = errors.New("paymentservice client: service unavailable")
)
