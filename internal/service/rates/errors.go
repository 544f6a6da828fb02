package rates

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNegativeRate возвращается при попытке установить отрицательную ставку
	ErrNegativeRate = errors.New("hourly rate must not be negative")

	// ErrSmallTierMandatory возвращается при попытке отключить tier small
	ErrSmallTierMandatory = errors.New("small tier cannot be disabled")

	// ErrActivityNeedsSmallRate возвращается при включении активности без ставки small
	ErrActivityNeedsSmallRate = errors.New("activity requires a positive small tier rate")

	// ErrInvalidFee возвращается при некорректном дополнительном сборе
	ErrInvalidFee = errors.New("invalid additional fee")

	// ErrInvalidMinHours возвращается при некорректной минимальной длительности
	ErrInvalidMinHours = errors.New("invalid minimum booking hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
