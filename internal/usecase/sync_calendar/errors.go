package sync_calendar

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("sync_calendar: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец площадки
	ErrAccessDenied = errors.New("sync_calendar: access denied")

	// ErrSyncDisabled возвращается, когда внешняя синхронизация отключена для площадки
	ErrSyncDisabled = errors.New("sync_calendar: external sync is disabled for this venue")

	// ErrSyncUnavailable возвращается, когда сервис календарей недоступен
	// Существующие блокировки при этом не меняются
	ErrSyncUnavailable = errors.New("sync_calendar: calendar service unavailable")

	// ErrInvalidFeed возвращается, когда внешний календарь вернул некорректные интервалы
	ErrInvalidFeed = errors.New("sync_calendar: invalid busy intervals feed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sync_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_calendar: internal error")
)
