package trade

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"stashboard/internal/domain/entity"
	"stashboard/pkg/logx"
)

// Listings retrieves every listing of the account in two phases: one search
// request for the id sequence, then one fetch request per chunk of 10 ids.
// Chunks are strictly sequential; a chunk that keeps getting rate limited is
// retried in place until the retry budget runs out, any other upstream error
// fails the whole call. Partial data is never returned.
func (c *Client) Listings(ctx context.Context, account, league, realm string) ([]entity.Listing, error) {
	search, err := c.search(ctx, account, league, realm)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if search.Total == 0 {
		return []entity.Listing{}, nil
	}

	chunks := lo.Chunk(search.Result, chunkSize)
	listings := make([]entity.Listing, 0, len(search.Result))

	for i, chunk := range chunks {
		logger(ctx).Info("fetching listings chunk",
			slog.Int(logx.FieldChunk, i+1),
			slog.Int(logx.FieldChunkCount, len(chunks)),
		)

		items, err := c.fetchChunk(ctx, chunk, search.ID, realm)
		if err != nil {
			return nil, fmt.Errorf("fetch chunk %d/%d: %w", i+1, len(chunks), err)
		}

		now := c.now()
		for _, item := range items {
			listings = append(listings, item.toEntity(now))
		}
	}

	return listings, nil
}

func (c *Client) search(ctx context.Context, account, league, realm string) (searchResponse, error) {
	endpoint := fmt.Sprintf("%s/search/%s/%s", c.baseURL, realm, url.PathEscape(league))

	body, err := json.Marshal(newSearchRequest(account))
	if err != nil {
		return searchResponse{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return searchResponse{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	metricRequests.WithLabelValues("search", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return searchResponse{}, &StatusError{Endpoint: "search", StatusCode: resp.StatusCode}
	}

	var out searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return searchResponse{}, fmt.Errorf("json.Decode: %w", err)
	}

	return out, nil
}

func (c *Client) fetchChunk(ctx context.Context, ids []string, queryID, realm string) ([]listingPayload, error) {
	endpoint := fmt.Sprintf("%s/fetch/%s?query=%s&realm=%s",
		c.baseURL, strings.Join(ids, ","), url.QueryEscape(queryID), url.QueryEscape(realm))

	for attempt := 0; ; attempt++ {
		// The limiter enforces the inter-request spacing, retries included.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("limiter.Wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("httpClient.Do: %w", err)
		}

		metricRequests.WithLabelValues("fetch", strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests {
			metricRateLimited.WithLabelValues("fetch").Inc()

			wait := retryAfter(resp, defaultFetchRetryAfter)
			resp.Body.Close()

			if attempt >= c.maxChunkRetries {
				return nil, &RateLimitedError{RetryAfter: wait}
			}

			logger(ctx).Warn("fetch rate limited, backing off",
				slog.Duration(logx.FieldRetryAfter, wait))

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &StatusError{Endpoint: "fetch", StatusCode: resp.StatusCode}
		}

		var out fetchResponse

		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		if err != nil {
			return nil, fmt.Errorf("json.Decode: %w", err)
		}

		return out.Result, nil
	}
}
