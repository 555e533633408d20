package trade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stashboard/internal/domain/entity"
	"stashboard/internal/infrastructure/credentials"
)

const testOrigin = "https://trade.test"

func testClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(
		server.URL,
		testOrigin,
		server.Client(),
		credentials.NewStatic(testOrigin, SessionCookieName, token),
	).WithChunkInterval(time.Millisecond)
}

func listingJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"item": {"name": "Ring", "typeLine": "Gold Ring", "icon": "ic", "w": 1, "h": 1, "inventoryId": "Stash1"},
		"listing": {
			"indexed": "2026-01-02T10:00:00Z",
			"price": {"type": "~b/o", "amount": 5, "currency": "chaos"},
			"stash": {"name": "Sell", "x": 3, "y": 4}
		}
	}`, id)
}

func TestListingsEmptySearch(t *testing.T) {
	rq := require.New(t)

	var fetchCalls atomic.Int32

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			w.Write([]byte(`{"total": 0, "id": "q", "result": []}`))
			return
		}

		fetchCalls.Add(1)
		w.Write([]byte(`{"result": []}`))
	}), "")

	listings, err := client.Listings(context.Background(), "acc", "Standard", "poe2")
	rq.NoError(err)
	rq.Empty(listings)
	rq.Equal(int32(0), fetchCalls.Load(), "no fetch calls for an empty search")
}

func TestListingsChunking(t *testing.T) {
	rq := require.New(t)

	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%02d", i)
	}

	var fetchPaths []string

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			rq.Equal("/search/poe2/Fresh%20League", r.URL.EscapedPath())
			w.Write([]byte(`{"total": 12, "id": "query-token", "result": ["` +
				strings.Join(ids, `","`) + `"]}`))
			return
		}

		rq.Equal("query-token", r.URL.Query().Get("query"))
		rq.Equal("poe2", r.URL.Query().Get("realm"))

		fetchPaths = append(fetchPaths, strings.TrimPrefix(r.URL.Path, "/fetch/"))

		chunk := strings.Split(strings.TrimPrefix(r.URL.Path, "/fetch/"), ",")
		rows := make([]string, len(chunk))
		for i, id := range chunk {
			rows[i] = listingJSON(id)
		}

		w.Write([]byte(`{"result": [` + strings.Join(rows, ",") + `]}`))
	}), "")

	listings, err := client.Listings(context.Background(), "acc", "Fresh League", "poe2")
	rq.NoError(err)
	rq.Len(listings, 12)

	rq.Len(fetchPaths, 2)
	rq.Equal(strings.Join(ids[:10], ","), fetchPaths[0])
	rq.Equal(strings.Join(ids[10:], ","), fetchPaths[1])

	first := listings[0]
	rq.Equal("id00", first.ID)
	rq.Equal("Ring", first.Name)
	rq.Equal(entity.SaleTypeBuyout, first.Price.Type)
	rq.Equal(5.0, first.Price.Amount)
	rq.Equal("chaos", first.Price.Currency)
	rq.NotNil(first.Stash)
	rq.Equal("Sell", first.Stash.Tab)
	rq.Equal("Stash1", first.Stash.Kind)
	rq.NotNil(first.Stash.X)
	rq.NotNil(first.Stash.Y)
	rq.Equal(3, *first.Stash.X)
	rq.Equal(4, *first.Stash.Y)
}

func TestListingsRateLimitedChunkRetries(t *testing.T) {
	rq := require.New(t)

	var fetchCalls atomic.Int32

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			w.Write([]byte(`{"total": 1, "id": "q", "result": ["only"]}`))
			return
		}

		// First fetch attempt is throttled, the retry succeeds.
		if fetchCalls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.Write([]byte(`{"result": [` + listingJSON("only") + `]}`))
	}), "")

	listings, err := client.Listings(context.Background(), "acc", "Standard", "poe2")
	rq.NoError(err)
	rq.Len(listings, 1)
	rq.Equal("only", listings[0].ID)
	rq.Equal(int32(2), fetchCalls.Load())
}

func TestListingsRetryBudgetExhausted(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			w.Write([]byte(`{"total": 1, "id": "q", "result": ["only"]}`))
			return
		}

		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}), "").WithMaxChunkRetries(2)

	_, err := client.Listings(context.Background(), "acc", "Standard", "poe2")

	var rateErr *RateLimitedError
	rq.ErrorAs(err, &rateErr)
}

func TestListingsUpstreamFailure(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			w.Write([]byte(`{"total": 1, "id": "q", "result": ["only"]}`))
			return
		}

		w.WriteHeader(http.StatusBadGateway)
	}), "")

	_, err := client.Listings(context.Background(), "acc", "Standard", "poe2")

	var statusErr *StatusError
	rq.ErrorAs(err, &statusErr)
	rq.Equal(http.StatusBadGateway, statusErr.StatusCode)
	rq.Equal("fetch", statusErr.Endpoint)
}

func TestSalesNoSession(t *testing.T) {
	rq := require.New(t)

	var calls atomic.Int32

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"result": []}`))
	}), "")

	_, err := client.Sales(context.Background(), "Standard")
	rq.ErrorIs(err, ErrNoSession)
	rq.Equal(int32(0), calls.Load(), "precondition failure must not hit the API")
}

func TestSales(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/history/Standard", r.URL.Path)
		w.Write([]byte(`{"result": [
			{"time": "2026-01-02T10:00:00Z", "buyer": "SomeExile",
			 "item": {"name": "Amulet", "typeLine": "Gold Amulet", "icon": "ic"},
			 "price": {"type": "~price", "amount": 2, "currency": "divine"}}
		]}`))
	}), "session-token")

	sales, err := client.Sales(context.Background(), "Standard")
	rq.NoError(err)
	rq.Len(sales, 1)
	rq.Equal("SomeExile", sales[0].Buyer)
	rq.Equal("Amulet", sales[0].Name)
	rq.Equal(entity.SaleTypeFixed, sales[0].Price.Type)
	rq.Equal(2.0, sales[0].Price.Amount)
	rq.Equal("divine", sales[0].Price.Currency)
}

func TestSalesMissingResultField(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}), "session-token")

	sales, err := client.Sales(context.Background(), "Standard")
	rq.NoError(err)
	rq.Empty(sales)
}

func TestSalesSessionExpired(t *testing.T) {
	rq := require.New(t)

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}), "session-token")

	_, err := client.Sales(context.Background(), "Standard")
	rq.ErrorIs(err, ErrSessionExpired)
}

func TestSalesCooldown(t *testing.T) {
	rq := require.New(t)

	var calls atomic.Int32

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}), "session-token")

	_, err := client.Sales(context.Background(), "Standard")

	var rateErr *RateLimitedError
	rq.ErrorAs(err, &rateErr)
	rq.Equal(60*time.Second, rateErr.RetryAfter)

	// While the cooldown is armed the call fails fast without hitting the API.
	_, err = client.Sales(context.Background(), "Standard")
	rq.ErrorAs(err, &rateErr)
	rq.Equal(int32(1), calls.Load())

	// Another league is not throttled.
	_, err = client.Sales(context.Background(), "Hardcore")
	rq.True(errors.As(err, &rateErr))
	rq.Equal(int32(2), calls.Load())
}

func TestRetryAfter(t *testing.T) {
	rq := require.New(t)

	resp := &http.Response{Header: http.Header{}}
	rq.Equal(defaultFetchRetryAfter, retryAfter(resp, defaultFetchRetryAfter))

	resp.Header.Set("Retry-After", "12")
	rq.Equal(12*time.Second, retryAfter(resp, defaultFetchRetryAfter))

	resp.Header.Set("Retry-After", "garbage")
	rq.Equal(defaultFetchRetryAfter, retryAfter(resp, defaultFetchRetryAfter))
}
