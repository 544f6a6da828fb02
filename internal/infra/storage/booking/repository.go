package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/dbmetrics"
	"github.com/blocmark/BM-PricingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pqUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"venue_id",
	"guest_id",
	"activity_type",
	"tier",
	"booking_date",
	"start_hour",
	"end_hour",
	"hours",
	"is_custom_price",
	"base_subtotal",
	"additional_fees_total",
	"platform_fee",
	"processing_fee",
	"net_to_host",
	"total_to_payer",
	"status",
	"checkout_ref",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование и занимает его почасовые слоты.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Занятость слотов обеспечивается уникальным ограничением booking_slots
// (venue_id, slot_date, hour): попытка занять уже занятый слот возвращает
// ErrSlotNotAvailable независимо от того, успела ли конкурирующая транзакция
// попасть в выборку проверки доступности.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"venue_id",
			"guest_id",
			"activity_type",
			"tier",
			"booking_date",
			"start_hour",
			"end_hour",
			"hours",
			"is_custom_price",
			"base_subtotal",
			"additional_fees_total",
			"platform_fee",
			"processing_fee",
			"net_to_host",
			"total_to_payer",
			"status",
		).
		Values(
			booking.ID,
			booking.VenueID,
			booking.GuestID,
			booking.ActivityType,
			booking.GroupSizeTier,
			booking.BookingDate,
			booking.StartHour,
			booking.EndHour,
			booking.Hours,
			booking.IsCustomPrice,
			booking.BaseSubtotal,
			booking.AdditionalFeesTotal,
			booking.PlatformFee,
			booking.ProcessingFee,
			booking.NetToHost,
			booking.TotalToPayer,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.occupySlots(ctx, executor, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByGuestID получает список бронирований гостя
// Опционально фильтрует по статусу
func (r *Repository) GetByGuestID(ctx context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"guest_id": guestID}).
		OrderBy("booking_date DESC, start_hour DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению неактивных бронирований (IncludeInactive)
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && *filter.StartDate == *filter.EndDate

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if singleDate {
		// Для конкретной даты сортируем по часу начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_hour ASC")
	} else {
		// Для периода сортируем по дате и часу (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_hour DESC")
	}

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	// (только для конкретной даты - для usecase создания бронирования)
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateCheckoutRef сохраняет идентификатор платежной сессии бронирования
func (r *Repository) UpdateCheckoutRef(ctx context.Context, id uuid.UUID, checkoutRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("checkout_ref", checkoutRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCheckoutRef - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCheckoutRef - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCheckoutRef - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины и освобождает его слоты
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	query, args, err = psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build slots delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Cancel - execute slots delete: %v", ErrExecQuery, err)
	}

	return nil
}

// occupySlots занимает почасовые слоты бронирования
func (r *Repository) occupySlots(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	slots := booking.Slots()
	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_slots").
		Columns("venue_id", "slot_date", "hour", "booking_id")
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(booking.VenueID, slot.Date, slot.Hour, booking.ID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: occupySlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrSlotNotAvailable
		}
		return fmt.Errorf("%w: occupySlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// bookingScanner общий интерфейс для *sql.Row и *sql.Rows
type bookingScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row bookingScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.GuestID,
		&booking.ActivityType,
		&booking.GroupSizeTier,
		&booking.BookingDate,
		&booking.StartHour,
		&booking.EndHour,
		&booking.Hours,
		&booking.IsCustomPrice,
		&booking.BaseSubtotal,
		&booking.AdditionalFeesTotal,
		&booking.PlatformFee,
		&booking.ProcessingFee,
		&booking.NetToHost,
		&booking.TotalToPayer,
		&booking.Status,
		&booking.CheckoutRef,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
