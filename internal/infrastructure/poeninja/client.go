// Package poeninja fetches the currency price-feed snapshot the rate table is
// built from.
package poeninja

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"stashboard/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// The feed is queried for one fixed asset class.
const assetType = "Currency"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type overviewResponse struct {
	Lines []linePayload `json:"lines"`
}

type linePayload struct {
	ID           string  `json:"id"`
	PrimaryValue float64 `json:"primaryValue"`
}

// CurrencyRates returns the feed snapshot for the league. Any failure here is
// absorbed by the caller into the fallback table, so errors stay plain.
func (c *Client) CurrencyRates(ctx context.Context, league string) ([]entity.RateLine, error) {
	endpoint := fmt.Sprintf("%s/exchange/current/overview?league=%s&type=%s",
		c.baseURL, url.QueryEscape(league), assetType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates feed: unexpected status %d", resp.StatusCode)
	}

	var out overviewResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	lines := make([]entity.RateLine, 0, len(out.Lines))
	for _, line := range out.Lines {
		lines = append(lines, entity.RateLine{
			ID:           line.ID,
			PrimaryValue: line.PrimaryValue,
		})
	}

	return lines, nil
}
