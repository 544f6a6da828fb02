package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/dbmetrics"
	"github.com/blocmark/BM-PricingService/pkg/psqlbuilder"
)

// Repository репозиторий площадок: базовые атрибуты, rate matrix,
// включенные активности/tiers и дополнительные сборы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID загружает площадку целиком: атрибуты, матрицу ставок с явными
// наборами включенных активностей и tiers, дополнительные сборы
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"currency",
		"min_booking_hours",
		"external_sync_enabled",
		"created_at",
		"updated_at",
	).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Currency,
		&v.MinBookingHours,
		&v.ExternalSyncEnabled,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	matrix, err := r.loadRateMatrix(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	v.RateMatrix = matrix

	fees, err := r.loadFees(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	v.AdditionalFees = fees

	return &v, nil
}

// UpsertRate устанавливает почасовую ставку для комбинации (активность, tier)
func (r *Repository) UpsertRate(ctx context.Context, venueID int64, activity domain.ActivityType, tier domain.GroupSizeTier, rate decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_rates").
		Columns("venue_id", "activity_type", "tier", "hourly_rate").
		Values(venueID, activity, tier, rate).
		Suffix("ON CONFLICT (venue_id, activity_type, tier) DO UPDATE SET hourly_rate = EXCLUDED.hourly_rate").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertRate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertRate - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// SetActivityEnabled сохраняет флаг включенности активности
// Выключение мягкое: строки venue_rates не удаляются
func (r *Repository) SetActivityEnabled(ctx context.Context, venueID int64, activity domain.ActivityType, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_activities").
		Columns("venue_id", "activity_type", "enabled").
		Values(venueID, activity, enabled).
		Suffix("ON CONFLICT (venue_id, activity_type) DO UPDATE SET enabled = EXCLUDED.enabled").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActivityEnabled - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetActivityEnabled - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// SetTierEnabled сохраняет флаг включенности group-size tier
func (r *Repository) SetTierEnabled(ctx context.Context, venueID int64, tier domain.GroupSizeTier, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_tiers").
		Columns("venue_id", "tier", "enabled").
		Values(venueID, tier, enabled).
		Suffix("ON CONFLICT (venue_id, tier) DO UPDATE SET enabled = EXCLUDED.enabled").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetTierEnabled - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetTierEnabled - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ReplaceFees заменяет список дополнительных сборов площадки
// Вызывается внутри транзакции вместе с остальными изменениями матрицы
func (r *Repository) ReplaceFees(ctx context.Context, venueID int64, fees []domain.AdditionalFee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venue_fees").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceFees - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceFees - execute delete: %v", ErrExecQuery, err)
	}

	if len(fees) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("venue_fees").
		Columns("venue_id", "name", "amount", "fee_type")
	for _, fee := range fees {
		insertBuilder = insertBuilder.Values(venueID, fee.Name, fee.Amount, fee.Type)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceFees - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceFees - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// UpdateMinBookingHours обновляет минимальную длительность бронирования площадки
func (r *Repository) UpdateMinBookingHours(ctx context.Context, venueID int64, hours int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("min_booking_hours", hours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateMinBookingHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateMinBookingHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateMinBookingHours - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// loadRateMatrix собирает rate matrix площадки из трех таблиц
func (r *Repository) loadRateMatrix(ctx context.Context, executor DBExecutor, venueID int64) (*domain.RateMatrix, error) {
	matrix := domain.NewRateMatrix()

	query, args, err := psqlbuilder.Select("activity_type", "tier", "hourly_rate").
		From("venue_rates").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - build rates query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - execute rates query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var activity domain.ActivityType
		var tier domain.GroupSizeTier
		var rate decimal.Decimal
		if err := rows.Scan(&activity, &tier, &rate); err != nil {
			return nil, fmt.Errorf("%w: loadRateMatrix - scan rate: %v", ErrScanRow, err)
		}
		if matrix.Rates[activity] == nil {
			matrix.Rates[activity] = make(map[domain.GroupSizeTier]decimal.Decimal)
		}
		matrix.Rates[activity][tier] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - rates rows error: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("activity_type").
		From("venue_activities").
		Where(squirrel.Eq{"venue_id": venueID, "enabled": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - build activities query: %v", ErrBuildQuery, err)
	}

	activityRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - execute activities query: %v", ErrExecQuery, err)
	}
	defer activityRows.Close()

	for activityRows.Next() {
		var activity domain.ActivityType
		if err := activityRows.Scan(&activity); err != nil {
			return nil, fmt.Errorf("%w: loadRateMatrix - scan activity: %v", ErrScanRow, err)
		}
		matrix.EnabledActivities[activity] = true
	}
	if err := activityRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - activities rows error: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("tier").
		From("venue_tiers").
		Where(squirrel.Eq{"venue_id": venueID, "enabled": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - build tiers query: %v", ErrBuildQuery, err)
	}

	tierRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - execute tiers query: %v", ErrExecQuery, err)
	}
	defer tierRows.Close()

	for tierRows.Next() {
		var tier domain.GroupSizeTier
		if err := tierRows.Scan(&tier); err != nil {
			return nil, fmt.Errorf("%w: loadRateMatrix - scan tier: %v", ErrScanRow, err)
		}
		matrix.EnabledTiers[tier] = true
	}
	if err := tierRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadRateMatrix - tiers rows error: %v", ErrScanRow, err)
	}

	// small обязателен независимо от содержимого venue_tiers
	matrix.EnabledTiers[domain.TierSmall] = true

	return matrix, nil
}

// loadFees загружает дополнительные сборы площадки
func (r *Repository) loadFees(ctx context.Context, executor DBExecutor, venueID int64) ([]domain.AdditionalFee, error) {
	query, args, err := psqlbuilder.Select("name", "amount", "fee_type").
		From("venue_fees").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadFees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadFees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fees := make([]domain.AdditionalFee, 0)
	for rows.Next() {
		var fee domain.AdditionalFee
		if err := rows.Scan(&fee.Name, &fee.Amount, &fee.Type); err != nil {
			return nil, fmt.Errorf("%w: loadFees - scan fee: %v", ErrScanRow, err)
		}
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadFees - rows error: %v", ErrScanRow, err)
	}

	return fees, nil
}
