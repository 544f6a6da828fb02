package models

import (
	"errors"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

var (
	// ErrInvalidMode возвращается при некорректном режиме блокировки
	ErrInvalidMode = errors.New("invalid availability mode")

	// ErrInvalidAction возвращается при некорректном действии
	ErrInvalidAction = errors.New("invalid availability action")
)

// Режимы и действия обновления календаря
const (
	ModeFullDay  = "full-day"
	ModeTimeSlot = "time-slot"

	ActionBlock   = "block"
	ActionUnblock = "unblock"
)

// Request модели

// SlotInput почасовой слот в запросе
type SlotInput struct {
	Date string `json:"date"` // "2026-03-15"
	Hour int    `json:"hour"` // 0-23
}

// UpdateAvailabilityRequest запрос на изменение календаря площадки
// Mode определяет гранулярность (целые дни или почасовые слоты),
// Action - блокировку или снятие блокировки
type UpdateAvailabilityRequest struct {
	UserID  int64       `json:"userId"`
	VenueID int64       `json:"venueId"`
	Mode    string      `json:"mode"`
	Action  string      `json:"action"`
	Dates   []string    `json:"dates,omitempty"`
	Slots   []SlotInput `json:"slots,omitempty"`
}

// Validate проверяет режим и действие запроса
func (r *UpdateAvailabilityRequest) Validate() error {
	if r.Mode != ModeFullDay && r.Mode != ModeTimeSlot {
		return ErrInvalidMode
	}
	if r.Action != ActionBlock && r.Action != ActionUnblock {
		return ErrInvalidAction
	}
	return nil
}

// ToDomainDates конвертирует строки дат в domain типы с валидацией
func ToDomainDates(raw []string) ([]types.Date, error) {
	dates := make([]types.Date, 0, len(raw))
	for _, s := range raw {
		date, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// ToDomainSlots конвертирует входные слоты в domain типы с валидацией
func ToDomainSlots(inputs []SlotInput) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(inputs))
	for _, input := range inputs {
		date, err := types.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		slot := domain.Slot{Date: date, Hour: input.Hour}
		if err := slot.Validate(); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// Response модели

// SlotResponse почасовой слот в ответе
type SlotResponse struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// AvailabilityResponse снимок календаря площадки
// Блокировки отдаются объединением всех источников (host + external)
type AvailabilityResponse struct {
	VenueID             int64          `json:"venueId"`
	ExternalSyncEnabled bool           `json:"externalSyncEnabled"`
	BlockedDates        []string       `json:"blockedDates"`
	BlockedSlots        []SlotResponse `json:"blockedSlots"`
}

// FromDomainRecord конвертирует domain запись в DTO
func FromDomainRecord(rec *domain.AvailabilityRecord) *AvailabilityResponse {
	if rec == nil {
		return nil
	}

	resp := &AvailabilityResponse{
		VenueID:             rec.VenueID,
		ExternalSyncEnabled: rec.ExternalSyncEnabled,
		BlockedDates:        make([]string, 0),
		BlockedSlots:        make([]SlotResponse, 0),
	}

	for _, date := range rec.BlockedDateList() {
		resp.BlockedDates = append(resp.BlockedDates, date.String())
	}
	for _, slot := range rec.BlockedSlotList() {
		resp.BlockedSlots = append(resp.BlockedSlots, SlotResponse{
			Date: slot.Date.String(),
			Hour: slot.Hour,
		})
	}

	return resp
}
