package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/logging"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/tracing"
)

const defaultTimeout = 30 * time.Second

// Client fetches the static provider availability feed: a JSON array of
// flat availability records.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := newHTTPClient(url)
	httpClient.Timeout = timeout

	return &Client{
		url:        url,
		httpClient: httpClient,
	}
}

// FetchAvailability fails with a *domain.FetchError on transport errors,
// non-2xx responses and undecodable bodies.
func (c *Client) FetchAvailability(ctx context.Context) ([]domain.RawAvailability, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "fetch_availability", c.url)
	defer span.End()

	records, err := c.fetch(ctx)
	tracing.RecordResult(span, err)
	return records, err
}

func (c *Client) fetch(ctx context.Context) ([]domain.RawAvailability, error) {
	slog.DebugContext(ctx, "fetching provider feed",
		slog.String("url", c.url),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: c.url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to provider feed",
			slog.String("url", c.url),
			slog.String("error", err.Error()),
		)
		return nil, &domain.FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.ErrorContext(ctx, "unexpected status code from provider feed",
			slog.String("url", c.url),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, &domain.FetchError{URL: c.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{URL: c.url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var records []domain.RawAvailability
	if err := json.Unmarshal(body, &records); err != nil {
		slog.ErrorContext(ctx, "failed to decode provider feed",
			slog.String("url", c.url),
			slog.String("error", err.Error()),
		)
		return nil, &domain.FetchError{URL: c.url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	slog.DebugContext(ctx, "fetched provider feed",
		slog.Int("count", len(records)),
	)
	return records, nil
}
