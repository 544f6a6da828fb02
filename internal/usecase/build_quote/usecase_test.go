package build_quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/ptr"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// --- Фейки ---

type fakeVenueRepo struct {
	venue *domain.Venue
	err   error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	return f.venue, f.err
}

type fakeAvailabilityRepo struct {
	record *domain.AvailabilityRecord
	err    error
}

func (f *fakeAvailabilityRepo) GetByVenue(_ context.Context, _ int64) (*domain.AvailabilityRecord, error) {
	return f.record, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestVenue(t *testing.T) *domain.Venue {
	t.Helper()

	matrix := domain.NewRateMatrix()
	require.NoError(t, matrix.SetRate("photoshoot", domain.TierSmall, decimal.NewFromInt(100)))
	require.NoError(t, matrix.SetActivityEnabled("photoshoot", true))

	return &domain.Venue{
		ID:              1,
		OwnerID:         42,
		Name:            "Loft Studio",
		Currency:        "USD",
		MinBookingHours: 2,
		RateMatrix:      matrix,
	}
}

func newTestUseCase(t *testing.T, venue *domain.Venue, record *domain.AvailabilityRecord) *UseCase {
	t.Helper()

	if record == nil {
		record = domain.NewAvailabilityRecord(venue.ID)
	}
	uc := NewUseCase(
		&fakeVenueRepo{venue: venue},
		&fakeAvailabilityRepo{record: record},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: fixedNow}
	return uc
}

func quoteRequest() *Request {
	return &Request{
		VenueID:      1,
		ActivityType: "photoshoot",
		Tier:         ptr.Ptr("small"),
		StartTime:    time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

// --- Тесты ---

// TestExecute_Success проверяет расчет по rate matrix:
// 2 часа по $100 дают $200 gross и $183.90 владельцу
func TestExecute_Success(t *testing.T) {
	uc := newTestUseCase(t, newTestVenue(t), nil)

	resp, err := uc.Execute(context.Background(), quoteRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Quote)

	quote := resp.Quote
	assert.Equal(t, 2, quote.Hours)
	assert.False(t, quote.IsCustomPrice)
	assert.Equal(t, domain.TierSmall, quote.GroupSizeTier)
	assert.Equal(t, "200.00", quote.Breakdown.BaseSubtotal.StringFixed(2))
	assert.Equal(t, "10.00", quote.Breakdown.PlatformFee.StringFixed(2))
	assert.Equal(t, "6.10", quote.Breakdown.ProcessingFee.StringFixed(2))
	assert.Equal(t, "183.90", quote.Breakdown.NetToHost.StringFixed(2))
	assert.Equal(t, "200.00", quote.Breakdown.TotalToPayer.StringFixed(2))
	assert.Equal(t, fixedNow, quote.CreatedAt)
}

// TestExecute_TierFromAttendeeCount проверяет вывод tier из количества гостей
func TestExecute_TierFromAttendeeCount(t *testing.T) {
	venue := newTestVenue(t)
	require.NoError(t, venue.RateMatrix.SetRate("photoshoot", domain.TierMedium, decimal.NewFromInt(150)))
	require.NoError(t, venue.RateMatrix.SetTierEnabled(domain.TierMedium, true))
	uc := newTestUseCase(t, venue, nil)

	req := quoteRequest()
	req.Tier = nil
	req.AttendeeCount = ptr.Ptr(10)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.TierMedium, resp.Quote.GroupSizeTier)
	assert.Equal(t, "300.00", resp.Quote.Breakdown.BaseSubtotal.StringFixed(2))
}

// TestExecute_BelowMinimumHours проверяет отклонение слишком короткого интервала
func TestExecute_BelowMinimumHours(t *testing.T) {
	uc := newTestUseCase(t, newTestVenue(t), nil)

	req := quoteRequest()
	req.EndTime = req.StartTime.Add(time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBelowMinimumHours)
}

// TestExecute_CustomPriceWaivesMinimum проверяет договорную цену со снятием минимума
func TestExecute_CustomPriceWaivesMinimum(t *testing.T) {
	uc := newTestUseCase(t, newTestVenue(t), nil)

	req := quoteRequest()
	req.EndTime = req.StartTime.Add(time.Hour)
	req.CustomPrice = ptr.Ptr(decimal.NewFromInt(500))
	req.WaiveMinimumHours = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Quote.IsCustomPrice)
	assert.Equal(t, "500.00", resp.Quote.Breakdown.BaseSubtotal.StringFixed(2))
}

// TestExecute_WaiveRequiresCustomPrice проверяет, что снятие минимума
// без договорной цены отклоняется
func TestExecute_WaiveRequiresCustomPrice(t *testing.T) {
	uc := newTestUseCase(t, newTestVenue(t), nil)

	req := quoteRequest()
	req.WaiveMinimumHours = true

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestExecute_RateUnavailable проверяет отказ при недоступной комбинации
// активности и tier
func TestExecute_RateUnavailable(t *testing.T) {
	uc := newTestUseCase(t, newTestVenue(t), nil)

	req := quoteRequest()
	req.Tier = ptr.Ptr("medium") // цена для medium не установлена

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

// TestExecute_Conflict проверяет, что конфликт с блокировкой возвращает
// первую конфликтующую пару (дата, час)
func TestExecute_Conflict(t *testing.T) {
	record := domain.NewAvailabilityRecord(1)
	record.BlockSlots(domain.Slot{Date: types.Date("2026-03-15"), Hour: 11})
	uc := newTestUseCase(t, newTestVenue(t), record)

	_, err := uc.Execute(context.Background(), quoteRequest())
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, types.Date("2026-03-15"), conflict.Date)
	assert.Equal(t, 11, conflict.Hour)
}

// TestExecute_ExtraFees проверяет объединение сборов площадки и запроса
func TestExecute_ExtraFees(t *testing.T) {
	venue := newTestVenue(t)
	cleaningFee, err := domain.NewAdditionalFee("Cleaning", decimal.NewFromInt(20), domain.FeeTypeFlat)
	require.NoError(t, err)
	venue.AdditionalFees = []domain.AdditionalFee{cleaningFee}
	uc := newTestUseCase(t, venue, nil)

	req := quoteRequest()
	req.ExtraFees = []FeeInput{{Name: "Equipment", Amount: 10, Type: "percentage"}}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// $200 база + $20 flat + 10% от базы = $240
	assert.Equal(t, "40.00", resp.Quote.Breakdown.AdditionalFeesTotal.StringFixed(2))
	assert.Equal(t, "240.00", resp.Quote.Breakdown.GrossTotal.StringFixed(2))
	assert.Equal(t, "240.00", resp.Quote.Breakdown.TotalToPayer.StringFixed(2))
}
