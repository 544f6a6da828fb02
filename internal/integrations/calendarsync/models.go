package calendarsync

// BusyInterval занятый интервал из внешнего календаря
// Если startHour и endHour не указаны, занят весь день
type BusyInterval struct {
	Date      string `json:"date"`
	StartHour *int   `json:"startHour,omitempty"`
	EndHour   *int   `json:"endHour,omitempty"`
}

// BusyIntervalsResponse ответ сервиса календарей
type BusyIntervalsResponse struct {
	VenueID   int64          `json:"venueId"`
	Intervals []BusyInterval `json:"intervals"`
}

// ErrorResponse модель ошибки от сервиса календарей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
