package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"gamevault/internal/pkg/errs"
	"gamevault/internal/pkg/logx"
)

// devEmailHeader is the fixed identifying header the upstream games API requires.
const devEmailHeader = "dev-email-address"

// Client issues the single catalog request against the upstream games API.
// It performs no retries; retry policy belongs to the caller.
type Client struct {
	apiURL     string
	devEmail   string
	httpClient *http.Client
}

// NewClient returns a catalog client for the given endpoint. The timeout
// applies to the whole request (the upstream contract fixes it at 5 seconds).
func NewClient(apiURL, devEmail string, timeout time.Duration) *Client {
	return &Client{
		apiURL:   apiURL,
		devEmail: devEmail,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs one GET against the games API and returns the full catalog.
// Failures are classified for the user-facing notice taxonomy: transport timeout,
// 5xx server error, any other non-2xx or no response, and malformed payload.
func (c *Client) Fetch(ctx context.Context) ([]Game, *errs.CustomError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		logx.Error(err, "Failed to build catalog request", "url", c.apiURL)
		return nil, errs.NewError(errs.ErrCatalogUnavailable)
	}

	req.Header.Set(devEmailHeader, c.devEmail)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			logx.Warn("Catalog request timed out", "url", c.apiURL)
			return nil, errs.NewError(errs.ErrCatalogTimeout)
		}

		logx.Error(err, "Catalog request failed", "url", c.apiURL)
		return nil, errs.NewError(errs.ErrCatalogUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		logx.Warn("Catalog API answered with server error", "status", resp.StatusCode)
		return nil, errs.NewError(errs.ErrCatalogServerError)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logx.Warn("Catalog API answered with unexpected status", "status", resp.StatusCode)
		return nil, errs.NewError(errs.ErrCatalogUnavailable)
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		logx.Error(err, "Failed to decode catalog payload")
		return nil, errs.NewError(errs.ErrCatalogMalformed)
	}

	return games, nil
}

// isTimeout reports whether the transport error is a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
