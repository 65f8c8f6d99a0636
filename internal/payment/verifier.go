// AngelaMos | 2026
// verifier.go

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ozgesarac/ceyizdiz/internal/config"
)

// Verifier checks a purchase token against the billing backend and
// returns the token's current state.
type Verifier interface {
	Verify(ctx context.Context, productID, token string) (string, error)
}

// Doer is the subset of http.Client the billing client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BillingClient talks to the store billing API over HTTP.
type BillingClient struct {
	baseURL string
	apiKey  string
	client  Doer
}

func NewBillingClient(cfg config.BillingConfig, client Doer) *BillingClient {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &BillingClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

type billingResponse struct {
	State string `json:"state"`
}

func (c *BillingClient) Verify(
	ctx context.Context,
	productID, token string,
) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/purchases/%s/tokens/%s",
		c.baseURL,
		url.PathEscape(productID),
		url.PathEscape(token),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build billing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("billing request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf(
			"billing returned %d: %s",
			resp.StatusCode,
			string(body),
		)
	}

	var parsed billingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode billing response: %w", err)
	}

	switch parsed.State {
	case StateActive, StateCanceled, StateRefunded:
		return parsed.State, nil
	default:
		return "", fmt.Errorf("billing returned unknown state %q", parsed.State)
	}
}
