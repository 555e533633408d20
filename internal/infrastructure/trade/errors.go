package trade

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSession means the credential store has no session token. No retry can
// fix this; the user has to log in on the trade site first.
var ErrNoSession = errors.New(
	"not logged in: POESESSID session cookie is missing, log in on the trade site and restart")

// ErrSessionExpired maps the upstream 403: the stored token is likely invalid
// or expired.
var ErrSessionExpired = errors.New(
	"access denied: the session token is likely invalid or expired, re-log on the trade site")

// RateLimitedError reports an upstream 429 together with how long the caller
// has to wait before trying again.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: wait %s", e.RetryAfter)
}

// StatusError is any other non-success upstream response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}
