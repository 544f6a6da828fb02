package sync_calendar

import (
	syncCalendar "github.com/blocmark/BM-PricingService/internal/usecase/sync_calendar"
)

// SlotResponse почасовой слот в ответе
type SlotResponse struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// SyncResponse результат синхронизации с внешним календарем
// Снимок календаря отдается уже с учетом слитых блокировок
type SyncResponse struct {
	VenueID      int64          `json:"venueId"`
	MergedDates  int            `json:"mergedDates"`
	MergedSlots  int            `json:"mergedSlots"`
	BlockedDates []string       `json:"blockedDates"`
	BlockedSlots []SlotResponse `json:"blockedSlots"`
}

// FromUseCaseResponse конвертирует результат usecase в HTTP ответ
func FromUseCaseResponse(result *syncCalendar.Response) *SyncResponse {
	resp := &SyncResponse{
		MergedDates:  result.MergedDates,
		MergedSlots:  result.MergedSlots,
		BlockedDates: make([]string, 0),
		BlockedSlots: make([]SlotResponse, 0),
	}

	if result.Record != nil {
		resp.VenueID = result.Record.VenueID
		for _, date := range result.Record.BlockedDateList() {
			resp.BlockedDates = append(resp.BlockedDates, date.String())
		}
		for _, slot := range result.Record.BlockedSlotList() {
			resp.BlockedSlots = append(resp.BlockedSlots, SlotResponse{
				Date: slot.Date.String(),
				Hour: slot.Hour,
			})
		}
	}

	return resp
}
