package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Activity is a single "bored" activity suggestion.
type Activity struct {
	Text string `json:"activity"`
	Type string `json:"type"`
}

// ActivityClient fetches activity suggestions from boredapi. The service is
// unauthenticated, so the client is never disabled.
type ActivityClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	http *http.Client
}

// NewActivityClient creates an activity-suggestion client.
func NewActivityClient() *ActivityClient {
	return &ActivityClient{
		BaseURL: "http://www.boredapi.com",
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Suggest returns one educational activity suggestion.
func (c *ActivityClient) Suggest(ctx context.Context) (*Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/activity?type=education", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("activity: unexpected status %d", resp.StatusCode)
	}

	var a Activity
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}
