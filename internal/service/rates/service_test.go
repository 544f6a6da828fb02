package rates

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/internal/service/rates/models"
	"github.com/blocmark/BM-PricingService/pkg/ptr"
)

// --- Фейки ---

// fakeVenueRepo применяет изменения к хранимой площадке, имитируя запись в БД
type fakeVenueRepo struct {
	venue *domain.Venue

	upsertCalls int
	feesCalls   int
}

func (f *fakeVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	return f.venue, nil
}

func (f *fakeVenueRepo) UpsertRate(_ context.Context, _ int64, activity domain.ActivityType, tier domain.GroupSizeTier, rate decimal.Decimal) error {
	f.upsertCalls++
	return f.venue.RateMatrix.SetRate(activity, tier, rate)
}

func (f *fakeVenueRepo) SetActivityEnabled(_ context.Context, _ int64, activity domain.ActivityType, enabled bool) error {
	return f.venue.RateMatrix.SetActivityEnabled(activity, enabled)
}

func (f *fakeVenueRepo) SetTierEnabled(_ context.Context, _ int64, tier domain.GroupSizeTier, enabled bool) error {
	return f.venue.RateMatrix.SetTierEnabled(tier, enabled)
}

func (f *fakeVenueRepo) ReplaceFees(_ context.Context, _ int64, fees []domain.AdditionalFee) error {
	f.feesCalls++
	f.venue.AdditionalFees = fees
	return nil
}

func (f *fakeVenueRepo) UpdateMinBookingHours(_ context.Context, _ int64, hours int) error {
	f.venue.MinBookingHours = hours
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

func newRatesVenue(t *testing.T) *domain.Venue {
	t.Helper()

	matrix := domain.NewRateMatrix()
	require.NoError(t, matrix.SetRate("photoshoot", domain.TierSmall, decimal.NewFromInt(100)))
	require.NoError(t, matrix.SetActivityEnabled("photoshoot", true))

	return &domain.Venue{
		ID:              1,
		OwnerID:         42,
		Name:            "Loft Studio",
		Currency:        "USD",
		MinBookingHours: 1,
		RateMatrix:      matrix,
	}
}

// --- Тесты ---

// TestUpdate_Success проверяет применение всех секций запроса
func TestUpdate_Success(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  42,
		VenueID: 1,
		Rates: []models.RateInput{
			{ActivityType: "photoshoot", Tier: "medium", HourlyRate: 150},
		},
		TierToggles: []models.TierToggle{
			{Tier: "medium", Enabled: true},
		},
		Fees: &[]models.FeeInput{
			{Name: "Cleaning", Amount: 25, Type: "flat"},
		},
		MinBookingHours: ptr.Ptr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.MinBookingHours)
	assert.Equal(t, "150.00", resp.Rates["photoshoot"]["medium"])
	assert.Contains(t, resp.EnabledTiers, "medium")
	require.Len(t, resp.Fees, 1)
	assert.Equal(t, "25.00", resp.Fees[0].Amount)
	assert.Equal(t, 1, repo.upsertCalls)
	assert.Equal(t, 1, repo.feesCalls)
}

// TestUpdate_AccessDenied проверяет, что ставки меняет только владелец
func TestUpdate_AccessDenied(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  7,
		VenueID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// TestUpdate_SmallTierMandatory проверяет, что попытка отключить small
// отклоняется до записи в хранилище
func TestUpdate_SmallTierMandatory(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  42,
		VenueID: 1,
		TierToggles: []models.TierToggle{
			{Tier: "small", Enabled: false},
		},
	})
	assert.ErrorIs(t, err, ErrSmallTierMandatory)
	assert.Zero(t, repo.upsertCalls)
}

// TestUpdate_NegativeRate проверяет отклонение отрицательной ставки
func TestUpdate_NegativeRate(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  42,
		VenueID: 1,
		Rates: []models.RateInput{
			{ActivityType: "photoshoot", Tier: "small", HourlyRate: -10},
		},
	})
	assert.ErrorIs(t, err, ErrNegativeRate)
}

// TestUpdate_ActivityNeedsSmallRate проверяет, что активность без
// положительной ставки small включить нельзя
func TestUpdate_ActivityNeedsSmallRate(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  42,
		VenueID: 1,
		ActivityToggles: []models.ActivityToggle{
			{ActivityType: "filming", Enabled: true},
		},
	})
	assert.ErrorIs(t, err, ErrActivityNeedsSmallRate)
}

// TestUpdate_InvalidFee проверяет отклонение некорректного сбора
func TestUpdate_InvalidFee(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
		UserID:  42,
		VenueID: 1,
		Fees: &[]models.FeeInput{
			{Name: "Mystery", Amount: 10, Type: "tiered"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidFee)
	assert.Zero(t, repo.feesCalls)
}

// TestUpdate_InvalidMinHours проверяет границы минимальной длительности
func TestUpdate_InvalidMinHours(t *testing.T) {
	repo := &fakeVenueRepo{venue: newRatesVenue(t)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	for _, hours := range []int{0, -1, 25} {
		_, err := svc.Update(context.Background(), &models.UpdateRateMatrixRequest{
			UserID:          42,
			VenueID:         1,
			MinBookingHours: ptr.Ptr(hours),
		})
		assert.ErrorIs(t, err, ErrInvalidMinHours, "hours=%d", hours)
	}
}
