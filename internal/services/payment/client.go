package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mmdapay/internal/config"

	"github.com/sony/gobreaker"
)

// providerCallTimeout bounds every outbound provider call. There is no
// retry; a timed-out call surfaces immediately as a failed response.
const providerCallTimeout = 30 * time.Second

// providerClient is a thin JSON client for one external provider. A
// circuit breaker sits in front of the HTTP client so a flapping
// provider fails fast instead of holding connections open for the full
// timeout.
type providerClient struct {
	baseURL    string
	apiKey     string
	merchantID string
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func newProviderClient(name string, cfg config.ProviderConfig) *providerClient {
	return &providerClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		merchantID: cfg.MerchantID,
		http:       &http.Client{Timeout: providerCallTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// postJSON sends a POST to baseURL+path and decodes the JSON response
// body. Non-2xx responses are returned as an error carrying the
// provider's own message when one can be extracted.
func (c *providerClient) postJSON(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

// getJSON sends a GET to baseURL+path and decodes the JSON response body.
func (c *providerClient) getJSON(ctx context.Context, path string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

func (c *providerClient) do(req *http.Request) (map[string]interface{}, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Merchant-Id", c.merchantID)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		var body map[string]interface{}
		if len(raw) > 0 {
			// Provider bodies are not under our control; a malformed
			// body on a 2xx is tolerated, on an error status it only
			// costs us the extracted message.
			_ = json.Unmarshal(raw, &body)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, errorMessage(body))
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body, _ := result.(map[string]interface{})
	return body, nil
}

// errorMessage pulls a human-readable message out of a provider error
// body, falling back to a generic string.
func errorMessage(body map[string]interface{}) string {
	for _, key := range []string{"message", "error", "error_description", "detail"} {
		if msg := stringField(body, key); msg != "" {
			return msg
		}
	}
	return "provider request failed"
}

// stringField reads an optional string field from a decoded body.
func stringField(body map[string]interface{}, key string) string {
	if body == nil {
		return ""
	}
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

// numberField reads an optional numeric field, treating absence as 0.
func numberField(body map[string]interface{}, key string) float64 {
	if body == nil {
		return 0
	}
	if v, ok := body[key].(float64); ok {
		return v
	}
	return 0
}
