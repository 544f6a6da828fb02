package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/dbmetrics"
	"github.com/blocmark/BM-PricingService/pkg/psqlbuilder"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// Repository репозиторий блокировок календаря площадки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenue загружает полную картину блокировок площадки,
// разделенную по источнику (host / external)
func (r *Repository) GetByVenue(ctx context.Context, venueID int64) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("external_sync_enabled").
		From("venues").
		Where(squirrel.Eq{"id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - build venue query: %v", ErrBuildQuery, err)
	}

	record := domain.NewAvailabilityRecord(venueID)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ExternalSyncEnabled)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - scan venue: %v", ErrScanRow, err)
	}

	if err := r.loadBlockedDates(ctx, executor, record); err != nil {
		return nil, err
	}
	if err := r.loadBlockedSlots(ctx, executor, record); err != nil {
		return nil, err
	}

	return record, nil
}

// AddBlockedDates добавляет полнодневные блокировки от указанного источника
// Повторное добавление существующей блокировки не является ошибкой
func (r *Repository) AddBlockedDates(ctx context.Context, venueID int64, source domain.BlockSource, dates []types.Date) error {
	if len(dates) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("blocked_dates").
		Columns("venue_id", "blocked_date", "source")
	for _, date := range dates {
		insertBuilder = insertBuilder.Values(venueID, date, source)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (venue_id, blocked_date, source) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddBlockedDates - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddBlockedDates - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// AddBlockedSlots добавляет почасовые блокировки от указанного источника
func (r *Repository) AddBlockedSlots(ctx context.Context, venueID int64, source domain.BlockSource, slots []domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("blocked_time_slots").
		Columns("venue_id", "slot_date", "hour", "source")
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(venueID, slot.Date, slot.Hour, source)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (venue_id, slot_date, hour, source) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddBlockedSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddBlockedSlots - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// RemoveBlockedDates снимает полнодневные блокировки хоста
// Блокировки внешнего календаря не затрагиваются
func (r *Repository) RemoveBlockedDates(ctx context.Context, venueID int64, dates []types.Date) error {
	if len(dates) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{
			"venue_id":     venueID,
			"blocked_date": dates,
			"source":       domain.SourceHost,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDates - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveBlockedDates - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// RemoveBlockedSlots снимает почасовые блокировки хоста
func (r *Repository) RemoveBlockedSlots(ctx context.Context, venueID int64, slots []domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("blocked_time_slots").
		Where(squirrel.Eq{
			"venue_id": venueID,
			"source":   domain.SourceHost,
		})

	slotConditions := make(squirrel.Or, 0, len(slots))
	for _, slot := range slots {
		slotConditions = append(slotConditions, squirrel.Eq{
			"slot_date": slot.Date,
			"hour":      slot.Hour,
		})
	}
	deleteBuilder = deleteBuilder.Where(slotConditions)

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveBlockedSlots - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// loadBlockedDates заполняет полнодневные блокировки записи
func (r *Repository) loadBlockedDates(ctx context.Context, executor DBExecutor, record *domain.AvailabilityRecord) error {
	query, args, err := psqlbuilder.Select("blocked_date", "source").
		From("blocked_dates").
		Where(squirrel.Eq{"venue_id": record.VenueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var date types.Date
		var source domain.BlockSource
		if err := rows.Scan(&date, &source); err != nil {
			return fmt.Errorf("%w: loadBlockedDates - scan row: %v", ErrScanRow, err)
		}
		switch source {
		case domain.SourceExternal:
			record.ExternalBlockedDates[date] = struct{}{}
		default:
			record.HostBlockedDates[date] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBlockedDates - rows error: %v", ErrScanRow, err)
	}
	return nil
}

// loadBlockedSlots заполняет почасовые блокировки записи
func (r *Repository) loadBlockedSlots(ctx context.Context, executor DBExecutor, record *domain.AvailabilityRecord) error {
	query, args, err := psqlbuilder.Select("slot_date", "hour", "source").
		From("blocked_time_slots").
		Where(squirrel.Eq{"venue_id": record.VenueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBlockedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBlockedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot domain.Slot
		var source domain.BlockSource
		if err := rows.Scan(&slot.Date, &slot.Hour, &source); err != nil {
			return fmt.Errorf("%w: loadBlockedSlots - scan row: %v", ErrScanRow, err)
		}
		switch source {
		case domain.SourceExternal:
			record.ExternalBlockedSlots[slot] = struct{}{}
		default:
			record.HostBlockedSlots[slot] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBlockedSlots - rows error: %v", ErrScanRow, err)
	}
	return nil
}
