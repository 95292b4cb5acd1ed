// Package weather fetches current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/apperr"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
)

// DefaultTimeout bounds a request when the caller did not configure one.
const DefaultTimeout = 5 * time.Second

// Messages shown to the user.
const (
	MsgAccessDenied = "Access denied. Check API key."
	MsgCityNotFound = "Can't find weather data for this city."
	MsgUnreadable   = "Couldn't read server response."
)

// ErrMissingField is returned when the payload lacks a field the report needs.
var ErrMissingField = errors.New("weather payload is missing a field")

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// apiResponse is the part of the current-weather payload nimbus displays.
// Pointers distinguish an absent field from a zero value.
type apiResponse struct {
	Name    *string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Client fetches current weather with a single bounded GET per call.
type Client struct {
	client  HTTPClient
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewClient creates a Client backed by an http.Client with the given timeout.
// appMetrics may be nil.
func NewClient(timeout time.Duration, log *slog.Logger, appMetrics *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewClientWithHTTP(&http.Client{Timeout: timeout}, timeout, log, appMetrics)
}

// NewClientWithHTTP creates a Client with a custom HTTP client.
func NewClientWithHTTP(
	client HTTPClient,
	timeout time.Duration,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
) *Client {
	return &Client{client: client, timeout: timeout, log: log, metrics: appMetrics}
}

// Fetch retrieves the report behind query. Every failure is an *apperr.Error
// of kind ErrTransport or ErrDecode.
func (c *Client) Fetch(ctx context.Context, query models.QueryURL) (*models.WeatherReport, error) {
	start := time.Now()
	report, err := c.fetch(ctx, query)
	duration := time.Since(start)
	c.metrics.Observe(metrics.TargetWeather, duration.Seconds(), err)

	if err != nil {
		c.log.DebugContext(ctx, "Weather request failed", "error", err, "duration", duration)
		return nil, err
	}

	c.log.InfoContext(ctx, "Weather fetched", "location", report.LocationName, "duration", duration)

	return report, nil
}

func (c *Client) fetch(ctx context.Context, query models.QueryURL) (*models.WeatherReport, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.log.DebugContext(ctx, "Requesting current weather", "url", redact(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query.String(), nil)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to execute weather request: %w", err))
	}
	defer resp.Body.Close()

	if err = checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to read response body: %w", err))
	}

	c.log.DebugContext(ctx, "Weather raw response", "body", string(body))

	return decode(body)
}

// checkStatus maps a non-2xx response to the matching failure. The body is not consulted.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return apperr.New(apperr.ErrTransport, MsgAccessDenied, statusError(resp))
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.ErrTransport, MsgCityNotFound, statusError(resp))
	default:
		return apperr.New(
			apperr.ErrTransport,
			fmt.Sprintf("Something went wrong... (%d)", resp.StatusCode),
			statusError(resp),
		)
	}
}

func statusError(resp *http.Response) error {
	return fmt.Errorf("weather API returned status %d", resp.StatusCode)
}

func decode(body []byte) (*models.WeatherReport, error) {
	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.New(apperr.ErrDecode, MsgUnreadable, fmt.Errorf("failed to decode weather response: %w", err))
	}

	switch {
	case raw.Name == nil:
		return nil, apperr.New(apperr.ErrDecode, MsgUnreadable, fmt.Errorf("%w: name", ErrMissingField))
	case len(raw.Weather) == 0:
		return nil, apperr.New(apperr.ErrDecode, MsgUnreadable, fmt.Errorf("%w: weather[0]", ErrMissingField))
	case raw.Main == nil || raw.Main.Temp == nil:
		return nil, apperr.New(apperr.ErrDecode, MsgUnreadable, fmt.Errorf("%w: main.temp", ErrMissingField))
	}

	return &models.WeatherReport{
		LocationName: *raw.Name,
		Description:  raw.Weather[0].Description,
		Temperature:  *raw.Main.Temp,
	}, nil
}

// transportFailure reports network errors and timeouts through the generic message.
func transportFailure(err error) error {
	reason := "request failed"

	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		reason = "request timed out"
	}

	return apperr.New(apperr.ErrTransport, fmt.Sprintf("Something went wrong... (%s)", reason), err)
}

// redact hides the API key before the URL reaches the logs.
func redact(query models.QueryURL) string {
	parsed, err := url.Parse(query.String())
	if err != nil {
		return "<unparsable url>"
	}

	values := parsed.Query()
	if values.Has("appid") {
		values.Set("appid", "REDACTED")
		parsed.RawQuery = values.Encode()
	}

	return parsed.String()
}
