package trade

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stashboard/internal/domain/entity"
	"stashboard/pkg/logx"
)

// Sales retrieves the account's recent completed sales for the league. The
// endpoint needs the session cookie (attached by the transport); its absence
// is a precondition failure, not a transport one. A 429 arms a cooldown for
// the duration the upstream asked for, and further calls fail fast until it
// expires. There is no automatic retry here: the backoff is surfaced to the
// caller.
func (c *Client) Sales(ctx context.Context, league string) ([]entity.SaleRecord, error) {
	if _, ok := c.creds.Lookup(c.origin, SessionCookieName); !ok {
		return nil, ErrNoSession
	}

	if wait, armed := c.cooldownRemaining(league); armed {
		return nil, &RateLimitedError{RetryAfter: wait}
	}

	endpoint := fmt.Sprintf("%s/history/%s", c.baseURL, url.PathEscape(league))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	metricRequests.WithLabelValues("history", strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metricRateLimited.WithLabelValues("history").Inc()

		wait := retryAfter(resp, defaultSalesRetryAfter)
		c.armCooldown(league, wait)

		logger(ctx).Warn("sales history rate limited",
			slog.String(logx.FieldLeague, league),
			slog.Duration(logx.FieldRetryAfter, wait))

		return nil, &RateLimitedError{RetryAfter: wait}
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrSessionExpired
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Endpoint: "history", StatusCode: resp.StatusCode}
	}

	var out historyResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	sales := make([]entity.SaleRecord, 0, len(out.Result))
	for _, payload := range out.Result {
		sales = append(sales, payload.toEntity())
	}

	return sales, nil
}

func cooldownKey(league string) string {
	return "sales:" + league
}

func (c *Client) armCooldown(league string, wait time.Duration) {
	c.cooldown.Set(cooldownKey(league), c.now().Add(wait), wait)
}

func (c *Client) cooldownRemaining(league string) (time.Duration, bool) {
	raw, found := c.cooldown.Get(cooldownKey(league))
	if !found {
		return 0, false
	}

	until, ok := raw.(time.Time)
	if !ok {
		return 0, false
	}

	remaining := until.Sub(c.now())
	if remaining <= 0 {
		return 0, false
	}

	return remaining, true
}
