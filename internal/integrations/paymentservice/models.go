package paymentservice

// CheckoutSessionRequest запрос на создание платежной сессии
type CheckoutSessionRequest struct {
	BookingID string `json:"bookingId"`
	GuestID   int64  `json:"guestId"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// CheckoutSession созданная платежная сессия
type CheckoutSession struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

// ErrorResponse модель ошибки от платежного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
