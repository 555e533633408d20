// Package trade is the HTTP client for the trade site: the two-phase listing
// retrieval and the sales history endpoint, with the cooperative backoff both
// of them require.
package trade

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"stashboard/internal/infrastructure/credentials"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	// The fetch endpoint accepts at most 10 ids per call.
	chunkSize = 10

	// Spacing between fetch requests that keeps us under the implicit rate
	// budget of the trade API.
	chunkInterval = 650 * time.Millisecond

	defaultFetchRetryAfter = 5 * time.Second
	defaultSalesRetryAfter = 60 * time.Second

	defaultMaxChunkRetries = 10

	// SessionCookieName is the credential the sales endpoint requires.
	SessionCookieName = "POESESSID"
)

type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
	creds      credentials.Store

	limiter         *rate.Limiter
	maxChunkRetries int

	// Sales cooldown: an armed entry means the sales endpoint told us to back
	// off and calls fail fast until it expires.
	cooldown *gocache.Cache

	now func() time.Time
}

func NewClient(
	baseURL string,
	origin string,
	httpClient *http.Client,
	creds credentials.Store,
) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:         baseURL,
		origin:          origin,
		httpClient:      httpClient,
		creds:           creds,
		limiter:         rate.NewLimiter(rate.Every(chunkInterval), 1),
		maxChunkRetries: defaultMaxChunkRetries,
		cooldown:        gocache.New(gocache.NoExpiration, time.Minute),
		now:             time.Now,
	}
}

func (c *Client) WithMaxChunkRetries(n int) *Client {
	if n > 0 {
		c.maxChunkRetries = n
	}

	return c
}

func (c *Client) WithChunkInterval(interval time.Duration) *Client {
	if interval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return c
}

// retryAfter reads the Retry-After header in seconds, falling back to def.
func retryAfter(resp *http.Response, def time.Duration) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return def
	}

	seconds, err := time.ParseDuration(raw + "s")
	if err != nil || seconds < 0 {
		return def
	}

	return seconds
}
