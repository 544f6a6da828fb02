package availability

import "errors"

var (
	// ErrVenueNotFound площадка не найдена
	ErrVenueNotFound = errors.New("availability.repository: venue not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
