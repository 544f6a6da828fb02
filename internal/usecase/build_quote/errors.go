package build_quote

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("build_quote: venue not found")

	// ErrRateUnavailable возвращается, когда для комбинации активности и tier
	// нет действующей ставки (активность отключена, tier отключен или ставка не задана)
	ErrRateUnavailable = errors.New("build_quote: no rate available for this activity and tier")

	// ErrBelowMinimumHours возвращается, когда длительность меньше минимальной
	ErrBelowMinimumHours = errors.New("build_quote: duration is below the venue minimum")

	// ErrInvalidAttendeeCount возвращается при некорректном количестве гостей
	ErrInvalidAttendeeCount = errors.New("build_quote: invalid attendee count")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("build_quote: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("build_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_quote: internal error")
)
