package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/wakegrid/wakegrid/pkg/types"
)

// HTTPChecker probes an HTTP endpoint. Success is a clean AND over the
// configured criteria: if ExpectedStatus is set the response code must
// match it, and if Pattern is set the response body must match it.
// Validation guarantees at least one of the two is configured.
type HTTPChecker struct {
	// URL is the full HTTP URL to check (e.g., "http://nas.lan:5000/health")
	URL string

	// ExpectedStatus is the exact status code required, if set.
	ExpectedStatus *int

	// Pattern is matched against the response body, if set.
	Pattern *regexp.Regexp

	// Client is the HTTP client to use (allows custom configuration)
	Client *http.Client
}

// NewHTTPChecker creates a new HTTP health checker
func NewHTTPChecker(url string) *HTTPChecker {
	return &HTTPChecker{
		URL: url,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Check performs one HTTP probe attempt
func (h *HTTPChecker) Check(ctx context.Context) Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("failed to create request: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("request failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	defer resp.Body.Close()

	if h.ExpectedStatus != nil && resp.StatusCode != *h.ExpectedStatus {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("HTTP %d (expected %d)", resp.StatusCode, *h.ExpectedStatus),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	if h.Pattern != nil {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Result{
				Healthy:   false,
				Message:   fmt.Sprintf("failed to read body: %v", err),
				CheckedAt: start,
				Duration:  time.Since(start),
			}
		}
		if !h.Pattern.Match(body) {
			return Result{
				Healthy:   false,
				Message:   fmt.Sprintf("body does not match %q", h.Pattern),
				CheckedAt: start,
				Duration:  time.Since(start),
			}
		}
	}

	return Result{
		Healthy:   true,
		Message:   fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the health check type
func (h *HTTPChecker) Type() types.CheckType {
	return types.CheckTypeHTTP
}

// WithTimeout sets the HTTP client timeout
func (h *HTTPChecker) WithTimeout(timeout time.Duration) *HTTPChecker {
	h.Client.Timeout = timeout
	return h
}
