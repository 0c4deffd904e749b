// Package enrich contains clients for the best-effort external collaborators
// that decorate the project listing and detail pages. Every client carries a
// bounded timeout and reports missing credentials as ErrDisabled instead of
// making a network call; callers degrade the affected field and move on.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDisabled indicates that a collaborator has no credentials configured.
var ErrDisabled = errors.New("collaborator disabled: missing credentials")

const defaultTimeout = 5 * time.Second

// Rates is an exchange-rate snapshot against a base currency.
type Rates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// ExchangeClient fetches the latest USD exchange rates from exchangerate-api.
type ExchangeClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	token string
	http  *http.Client
}

// NewExchangeClient creates a client keyed by the given API token. An empty
// token yields a disabled client.
func NewExchangeClient(token string) *ExchangeClient {
	return &ExchangeClient{
		BaseURL: "https://v6.exchangerate-api.com/v6",
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// LatestUSD returns the most recent USD rate snapshot.
func (c *ExchangeClient) LatestUSD(ctx context.Context) (*Rates, error) {
	if c.token == "" {
		return nil, ErrDisabled
	}

	url := fmt.Sprintf("%s/%s/latest/USD", c.BaseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		BaseCode        string             `json:"base_code"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &Rates{Base: body.BaseCode, Rates: body.ConversionRates}, nil
}
