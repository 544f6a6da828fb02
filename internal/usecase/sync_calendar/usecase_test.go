package sync_calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/internal/integrations/calendarsync"
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

// fakeAvailabilityRepo хранит блокировки в in-memory записи, имитируя
// семантику ON CONFLICT DO NOTHING
type fakeAvailabilityRepo struct {
	record *domain.AvailabilityRecord
}

func (f *fakeAvailabilityRepo) GetByVenue(_ context.Context, _ int64) (*domain.AvailabilityRecord, error) {
	return f.record, nil
}

func (f *fakeAvailabilityRepo) AddBlockedDates(_ context.Context, _ int64, source domain.BlockSource, dates []types.Date) error {
	for _, date := range dates {
		if source == domain.SourceExternal {
			f.record.ExternalBlockedDates[date] = struct{}{}
		} else {
			f.record.HostBlockedDates[date] = struct{}{}
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) AddBlockedSlots(_ context.Context, _ int64, source domain.BlockSource, slots []domain.Slot) error {
	for _, slot := range slots {
		if source == domain.SourceExternal {
			f.record.ExternalBlockedSlots[slot] = struct{}{}
		} else {
			f.record.HostBlockedSlots[slot] = struct{}{}
		}
	}
	return nil
}

type fakeCalendarClient struct {
	intervals []calendarsync.BusyInterval
	err       error
}

func (f *fakeCalendarClient) GetBusyIntervals(_ context.Context, _ int64) ([]calendarsync.BusyInterval, error) {
	return f.intervals, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

func newSyncVenue() *domain.Venue {
	return &domain.Venue{
		ID:                  1,
		OwnerID:             42,
		Name:                "Loft Studio",
		ExternalSyncEnabled: true,
	}
}

func newSyncUseCase(venue *domain.Venue, repo *fakeAvailabilityRepo, client *fakeCalendarClient) *UseCase {
	return NewUseCase(
		&fakeVenueRepo{venue: venue},
		repo,
		client,
		fakeTxManager{},
		nopLogger{},
	)
}

// --- Тесты ---

// TestExecute_MergesFeed проверяет слияние фида: полнодневные события
// и почасовые интервалы попадают в блокировки источника external
func TestExecute_MergesFeed(t *testing.T) {
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	repo.record.Block(types.Date("2026-03-10"))

	client := &fakeCalendarClient{intervals: []calendarsync.BusyInterval{
		{Date: "2026-03-15"},
		{Date: "2026-03-16", StartHour: ptr.Ptr(9), EndHour: ptr.Ptr(12)},
	}}
	uc := newSyncUseCase(newSyncVenue(), repo, client)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.MergedDates)
	assert.Equal(t, 3, resp.MergedSlots)
	assert.Len(t, repo.record.ExternalBlockedDates, 1)
	assert.Len(t, repo.record.ExternalBlockedSlots, 3)

	// Блокировки хоста не затронуты
	assert.Len(t, repo.record.HostBlockedDates, 1)
}

// TestExecute_Idempotent проверяет, что повторная синхронизация того же фида
// не меняет состояние календаря
func TestExecute_Idempotent(t *testing.T) {
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	client := &fakeCalendarClient{intervals: []calendarsync.BusyInterval{
		{Date: "2026-03-15"},
		{Date: "2026-03-16", StartHour: ptr.Ptr(10), EndHour: ptr.Ptr(11)},
	}}
	uc := newSyncUseCase(newSyncVenue(), repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	require.NoError(t, err)

	assert.Len(t, repo.record.ExternalBlockedDates, 1)
	assert.Len(t, repo.record.ExternalBlockedSlots, 1)
}

// TestExecute_SyncDisabled проверяет отказ при выключенной синхронизации
func TestExecute_SyncDisabled(t *testing.T) {
	venue := newSyncVenue()
	venue.ExternalSyncEnabled = false
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	uc := newSyncUseCase(venue, repo, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

// TestExecute_AccessDenied проверяет, что синхронизацию запускает только владелец
func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	uc := newSyncUseCase(newSyncVenue(), repo, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, VenueID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// TestExecute_SyncUnavailable проверяет, что недоступность сервиса календарей
// не меняет существующие блокировки
func TestExecute_SyncUnavailable(t *testing.T) {
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	repo.record.Block(types.Date("2026-03-10"))
	client := &fakeCalendarClient{err: calendarsync.ErrSyncUnavailable}
	uc := newSyncUseCase(newSyncVenue(), repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	assert.ErrorIs(t, err, ErrSyncUnavailable)

	assert.Len(t, repo.record.HostBlockedDates, 1)
	assert.Empty(t, repo.record.ExternalBlockedDates)
}

// TestExecute_InvalidFeed проверяет отклонение некорректного фида целиком
func TestExecute_InvalidFeed(t *testing.T) {
	repo := &fakeAvailabilityRepo{record: domain.NewAvailabilityRecord(1)}
	client := &fakeCalendarClient{intervals: []calendarsync.BusyInterval{
		{Date: "2026-03-15"},
		{Date: "not-a-date"},
	}}
	uc := newSyncUseCase(newSyncVenue(), repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, VenueID: 1})
	assert.ErrorIs(t, err, ErrInvalidFeed)

	// Валидные интервалы фида тоже не применяются
	assert.Empty(t, repo.record.ExternalBlockedDates)
}
