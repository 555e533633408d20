package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stashboard/internal/cache"
	"stashboard/internal/domain/entity"
	"stashboard/internal/domain/service/rates"
	"stashboard/pkg/logx"
)

const (
	defaultListingTTL     = 3 * time.Minute
	defaultSalesTTL       = 5 * time.Minute
	defaultThresholdHours = 12
)

type ListingSource interface {
	Listings(ctx context.Context, account, league, realm string) ([]entity.Listing, error)
}

type SalesSource interface {
	Sales(ctx context.Context, league string) ([]entity.SaleRecord, error)
}

type RateSource interface {
	CurrencyRates(ctx context.Context, league string) ([]entity.RateLine, error)
}

// Service is the single stateful object of the engine. It owns the rate
// table, both snapshot caches and the upstream fetchers, so concurrent
// requests share one consistent view.
type Service struct {
	listings  ListingSource
	sales     SalesSource
	rateFeed  RateSource

	listingTTL time.Duration
	salesTTL   time.Duration

	mu    sync.RWMutex
	table entity.RateTable

	listingCache *cache.Slot[[]entity.Listing]
	salesCache   *cache.Slot[[]entity.SaleRecord]

	flight singleflight.Group
	now    func() time.Time
}

func New(listings ListingSource, sales SalesSource, rateFeed RateSource) *Service {
	return &Service{
		listings:     listings,
		sales:        sales,
		rateFeed:     rateFeed,
		listingTTL:   defaultListingTTL,
		salesTTL:     defaultSalesTTL,
		listingCache: cache.NewSlot[[]entity.Listing](),
		salesCache:   cache.NewSlot[[]entity.SaleRecord](),
		now:          time.Now,
	}
}

func (s *Service) WithListingTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.listingTTL = ttl
	}

	return s
}

func (s *Service) WithSalesTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.salesTTL = ttl
	}

	return s
}

// Query identifies one dashboard scope. The threshold only affects
// presentation, not caching.
type Query struct {
	Account        string
	League         string
	Realm          string
	ThresholdHours int
}

func (q Query) fingerprint() string {
	return strings.Join([]string{q.Account, q.League, q.Realm}, "|")
}

type fetched[T any] struct {
	payload   T
	fetchedAt time.Time
}

// Dashboard returns the aggregated listing overview, fetching from the trade
// API only when the cached snapshot is missing, expired, scope-mismatched or
// force is set. Concurrent calls for the same scope coalesce into one fetch.
func (s *Service) Dashboard(ctx context.Context, query Query, force bool) (Overview, time.Time, error) {
	if query.ThresholdHours <= 0 {
		query.ThresholdHours = defaultThresholdHours
	}

	if err := s.ensureRates(ctx, query.League, force); err != nil {
		return Overview{}, time.Time{}, fmt.Errorf("ensure rates: %w", err)
	}

	fingerprint := query.fingerprint()

	result, err, shared := s.flight.Do("listings|"+fingerprint, func() (interface{}, error) {
		payload, fetchedAt, err := s.listingCache.GetOrFetch(
			ctx, fingerprint, s.listingTTL, force,
			func(ctx context.Context) ([]entity.Listing, error) {
				return s.listings.Listings(ctx, query.Account, query.League, query.Realm)
			},
		)
		if err != nil {
			return nil, err
		}

		return fetched[[]entity.Listing]{payload: payload, fetchedAt: fetchedAt}, nil
	})
	if err != nil {
		return Overview{}, time.Time{}, fmt.Errorf("fetch listings: %w", err)
	}

	snapshot := result.(fetched[[]entity.Listing])

	if shared {
		logger(ctx).Debug("coalesced concurrent listing fetch", logx.FieldLeague, query.League)
	}

	overview := buildOverview(snapshot.payload, query.ThresholdHours, s.Rates(), s.now())

	return overview, snapshot.fetchedAt, nil
}

// Sales returns the trade history summary for a league, cached separately
// from listings.
func (s *Service) Sales(ctx context.Context, league string, force bool) (SalesSummary, time.Time, error) {
	if err := s.ensureRates(ctx, league, false); err != nil {
		return SalesSummary{}, time.Time{}, fmt.Errorf("ensure rates: %w", err)
	}

	result, err, _ := s.flight.Do("sales|"+league, func() (interface{}, error) {
		payload, fetchedAt, err := s.salesCache.GetOrFetch(
			ctx, league, s.salesTTL, force,
			func(ctx context.Context) ([]entity.SaleRecord, error) {
				return s.sales.Sales(ctx, league)
			},
		)
		if err != nil {
			return nil, err
		}

		return fetched[[]entity.SaleRecord]{payload: payload, fetchedAt: fetchedAt}, nil
	})
	if err != nil {
		return SalesSummary{}, time.Time{}, fmt.Errorf("fetch sales: %w", err)
	}

	snapshot := result.(fetched[[]entity.SaleRecord])

	return buildSalesSummary(snapshot.payload, s.Rates(), s.now()), snapshot.fetchedAt, nil
}

// RateListing returns the presentable slice of the current rate table,
// refreshing the feed on force.
func (s *Service) RateListing(ctx context.Context, league string, force bool) ([]rates.Entry, error) {
	if err := s.ensureRates(ctx, league, force); err != nil {
		return nil, fmt.Errorf("ensure rates: %w", err)
	}

	return rates.Listing(s.Rates()), nil
}

// Rates returns a copy of the current table so callers never observe a
// refresh mid-read.
func (s *Service) Rates() entity.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := make(entity.RateTable, len(s.table))
	for currency, value := range s.table {
		table[currency] = value
	}

	return table
}

// Reset drops all cached state. The next call refetches everything.
func (s *Service) Reset() {
	s.listingCache.Reset()
	s.salesCache.Reset()

	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

// ensureRates populates the rate table on first use or on force. A failing
// feed degrades to the static fallback instead of failing the request;
// replacement is always wholesale.
func (s *Service) ensureRates(ctx context.Context, league string, force bool) error {
	s.mu.RLock()
	populated := len(s.table) > 0
	s.mu.RUnlock()

	if populated && !force {
		return nil
	}

	_, err, _ := s.flight.Do("rates|"+league, func() (interface{}, error) {
		lines, err := s.rateFeed.CurrencyRates(ctx, league)

		var table entity.RateTable

		if err != nil {
			logger(ctx).Warn("rate feed unavailable, using fallback rates",
				logx.FieldLeague, league,
				logx.Error(err))

			table = rates.Fallback()
		} else {
			table = rates.Build(lines)

			logger(ctx).Info("exchange rates refreshed",
				logx.FieldLeague, league,
				logx.FieldCount, len(table))
		}

		s.mu.Lock()
		s.table = table
		s.mu.Unlock()

		return nil, nil
	})

	return err
}
