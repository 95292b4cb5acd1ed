package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// Provider is an interface that defines a method for locating the caller.
// The Locate method resolves the approximate coordinates of the machine
// nimbus runs on from its public IP address.
type Provider interface {
	Locate(ctx context.Context) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for all providers.
var (
	ErrEmptyResponse  = errors.New("geolocation provider returned no coordinates")
	ErrInvalidCoords  = errors.New("geolocation provider returned invalid coordinates")
	ErrUnauthorized   = errors.New("geolocation provider rejected the API key")
	ErrProviderFailed = errors.New("geolocation provider reported a failure")
)

// getJSON performs a GET against reqURL and decodes a JSON body into out.
func getJSON(ctx context.Context, client HTTPClient, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute geolocation request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("geolocation API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	return nil
}
