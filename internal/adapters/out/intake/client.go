// Package intake implements the outbound client for the order-intake
// service, the upstream system customers place orders against.
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"fueldispatch/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Doer is the subset of http.Client the client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches pending order records over the intake service's REST API.
type Client struct {
	baseURL string
	session Doer
}

// NewClient creates an intake client for the given base URL. A nil session
// falls back to an http.Client with a sane timeout.
func NewClient(baseURL string, session Doer) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("intake: base URL is required")
	}

	if session == nil {
		session = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{baseURL: baseURL, session: session}, nil
}

// assignmentDTO mirrors one order record in the intake service's envelope.
type assignmentDTO struct {
	Number           string    `json:"orderNumber"`
	CustomerName     string    `json:"customerName"`
	CustomerPhone    string    `json:"customerPhone"`
	Address          string    `json:"address"`
	FuelType         string    `json:"fuelType"`
	QuantityLiters   int       `json:"quantityLiters"`
	Priority         string    `json:"priority"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

type assignmentsEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    []assignmentDTO `json:"data"`
}

// FetchPendingOrders pulls the order records currently awaiting dispatch.
// Transient failures (network errors, 429, 5xx) are retried with backoff.
func (c *Client) FetchPendingOrders(ctx context.Context) ([]ports.IntakeOrder, error) {
	resp, err := c.doWithRetry(ctx, c.baseURL+"/assignments")
	if err != nil {
		return nil, fmt.Errorf("intake: fetch assignments: %w", err)
	}
	defer resp.Body.Close()

	var envelope assignmentsEnvelope
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("intake: decode assignments: %w", err)
	}

	if envelope.Status != "success" {
		return nil, fmt.Errorf("intake: service reported %q: %s", envelope.Status, envelope.Message)
	}

	records := make([]ports.IntakeOrder, 0, len(envelope.Data))
	for _, dto := range envelope.Data {
		records = append(records, ports.IntakeOrder{
			Number:           dto.Number,
			CustomerName:     dto.CustomerName,
			CustomerPhone:    dto.CustomerPhone,
			Address:          dto.Address,
			FuelType:         dto.FuelType,
			QuantityLiters:   dto.QuantityLiters,
			Priority:         dto.Priority,
			ConfirmationCode: dto.ConfirmationCode,
			CreatedAt:        dto.CreatedAt,
		})
	}
	return records, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (c *Client) doWithRetry(ctx context.Context, url string) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.get(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
