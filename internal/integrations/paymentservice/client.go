package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с платежным сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateCheckoutSession создает платежную сессию для бронирования
func (c *Client) CreateCheckoutSession(ctx context.Context, request CheckoutSessionRequest) (*CheckoutSession, error) {
	url := fmt.Sprintf("%s/internal/checkout-sessions", c.baseURL)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Payment service unavailable for booking_id=%s: %v", request.BookingID, err)
		return nil, fmt.Errorf("%w: booking_id=%s: %v", ErrServiceUnavailable, request.BookingID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: booking_id=%s", ErrPaymentRejected, request.BookingID)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: booking_id=%s: status code %d", ErrServiceUnavailable, request.BookingID, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", ErrInvalidResponse)
	}

	c.log.Info("Created checkout session %s for booking_id=%s", session.SessionID, request.BookingID)
	return &session, nil
}
