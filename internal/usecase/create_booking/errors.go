package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrRateUnavailable возвращается, когда для комбинации активности и tier нет ставки
	ErrRateUnavailable = errors.New("create_booking: no rate available for this activity and tier")

	// ErrBelowMinimumHours возвращается, когда длительность меньше минимальной
	ErrBelowMinimumHours = errors.New("create_booking: duration is below the venue minimum")

	// ErrInvalidAttendeeCount возвращается при некорректном количестве гостей
	ErrInvalidAttendeeCount = errors.New("create_booking: invalid attendee count")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	// Бронирование занимает целые часы одного календарного дня
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrSlotNotAvailable возвращается, когда запрошенные часы уже заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPaymentFailed возвращается, когда платежную сессию создать не удалось
	// Бронирование при этом переводится в статус payment_failed, слоты освобождаются
	ErrPaymentFailed = errors.New("create_booking: failed to create checkout session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
