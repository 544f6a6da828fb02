package domain

// Ограничения бизнес-валидации
const (
	MinBookingHoursLimit = 1
	MaxBookingHoursLimit = 24

	MaxActivityTypeLength = 100
	MaxFeeNameLength      = 100

	MinSlotHour = 0
	MaxSlotHour = 23
)

// Дефолтные значения
const (
	DefaultMinBookingHours = 1
	DefaultCurrency        = "USD"
)

// Форматы времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Неактивные бронирования не занимают слоты и не участвуют в проверке конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByGuest,
	StatusCancelledByHost,
	StatusPaymentFailed,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusCompleted,
}
