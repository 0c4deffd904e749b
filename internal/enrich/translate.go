package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TranslateClient translates text batches with the Yandex Translate API.
type TranslateClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey   string
	folderID string
	http     *http.Client
}

// NewTranslateClient creates a translation client. Missing credentials yield
// a disabled client.
func NewTranslateClient(apiKey, folderID string) *TranslateClient {
	return &TranslateClient{
		BaseURL:  "https://translate.api.cloud.yandex.net/translate/v2/translate",
		apiKey:   apiKey,
		folderID: folderID,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// Translate translates texts into the target language, preserving order:
// the result has exactly one entry per input, at the same index.
func (c *TranslateClient) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	if c.apiKey == "" || c.folderID == "" {
		return nil, ErrDisabled
	}

	payload, err := json.Marshal(map[string]any{
		"folderId":           c.folderID,
		"texts":              texts,
		"targetLanguageCode": target,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Translations) != len(texts) {
		return nil, fmt.Errorf("translate: got %d translations for %d texts", len(body.Translations), len(texts))
	}

	out := make([]string, len(body.Translations))
	for i, t := range body.Translations {
		out[i] = t.Text
	}
	return out, nil
}
