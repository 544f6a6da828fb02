package calendarsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом внешних календарей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса календарей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyIntervals получает занятые интервалы внешнего календаря площадки
func (c *Client) GetBusyIntervals(ctx context.Context, venueID int64) ([]BusyInterval, error) {
	url := fmt.Sprintf("%s/internal/venues/%d/busy-intervals", c.baseURL, venueID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Недоступность сервиса не должна ломать существующие блокировки:
		// вызывающая сторона откладывает синхронизацию
		c.log.Error("Calendar service unavailable for venue_id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: venue_id=%d: %v", ErrSyncUnavailable, venueID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid venue ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrVenueNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: venue_id=%d: status code %d", ErrSyncUnavailable, venueID, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload BusyIntervalsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Fetched %d busy intervals for venue_id=%d", len(payload.Intervals), venueID)
	return payload.Intervals, nil
}
