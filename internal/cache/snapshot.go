// Package cache holds the in-process snapshot slots that memoize upstream
// fetches. One slot per data kind; no eviction beyond overwrite.
package cache

import (
	"context"
	"sync"
	"time"
)

// Slot memoizes exactly one fetched payload together with the parameter
// fingerprint it was fetched for. A stored payload is served only while it is
// younger than the caller's TTL and the fingerprint matches exactly; a failed
// refresh leaves the previous payload in place (the failing call still
// errors).
type Slot[T any] struct {
	mu          sync.Mutex
	payload     T
	hasPayload  bool
	fetchedAt   time.Time
	fingerprint string

	now func() time.Time
}

func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{now: time.Now}
}

// GetOrFetch returns the cached payload when it is still valid for the given
// fingerprint, otherwise invokes fetch and overwrites the slot on success.
// force skips the freshness check unconditionally. The returned time is when
// the payload was fetched.
func (s *Slot[T]) GetOrFetch(
	ctx context.Context,
	fingerprint string,
	ttl time.Duration,
	force bool,
	fetch func(context.Context) (T, error),
) (T, time.Time, error) {
	s.mu.Lock()

	if !force && s.valid(fingerprint, ttl) {
		payload, fetchedAt := s.payload, s.fetchedAt
		s.mu.Unlock()

		return payload, fetchedAt, nil
	}

	s.mu.Unlock()

	payload, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = payload
	s.hasPayload = true
	s.fetchedAt = s.now()
	s.fingerprint = fingerprint

	return payload, s.fetchedAt, nil
}

// Reset drops the stored payload. The next GetOrFetch always fetches.
func (s *Slot[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	s.payload = zero
	s.hasPayload = false
	s.fetchedAt = time.Time{}
	s.fingerprint = ""
}

func (s *Slot[T]) valid(fingerprint string, ttl time.Duration) bool {
	return s.hasPayload &&
		s.now().Sub(s.fetchedAt) < ttl &&
		s.fingerprint == fingerprint
}
