package calendarsync

import "errors"

var (
	// ErrVenueNotFound возвращается, когда внешний календарь площадки не найден
	ErrVenueNotFound = errors.New("calendarsync client: venue calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsync client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarsync client: invalid response")

	// ErrSyncUnavailable возвращается, когда сервис календарей недоступен
	// Синхронизация в этом случае откладывается, существующие блокировки не трогаем
	ErrSyncUnavailable = errors.New("calendarsync client: service unavailable")
)
