// Package worker holds the background refresher that keeps the dashboard
// caches warm between requests.
package worker

import (
	"context"
	"fmt"
	"time"

	"stashboard/internal/domain/service/dashboard"
	"stashboard/pkg/logx"
)

// Refresher periodically re-runs the dashboard fetch so interactive requests
// hit a fresh cache. Disabled when the interval is zero.
type Refresher struct {
	service  *dashboard.Service
	query    dashboard.Query
	interval time.Duration

	withSales bool
}

func NewRefresher(service *dashboard.Service, query dashboard.Query, interval time.Duration) *Refresher {
	return &Refresher{
		service:  service,
		query:    query,
		interval: interval,
	}
}

// WithSales makes the refresher warm the sales cache as well.
func (w *Refresher) WithSales() *Refresher {
	w.withSales = true

	return w
}

// Run blocks until the context is done. Refresh failures are logged and the
// loop continues; the next interactive request will retry anyway.
func (w *Refresher) Run(ctx context.Context) error {
	if w.interval <= 0 {
		logger(ctx).Info("cache refresher disabled")

		<-ctx.Done()

		return ctx.Err()
	}

	logger(ctx).Info("cache refresher started",
		logx.FieldLeague, w.query.League,
		logx.FieldAccount, w.query.Account,
		"interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("cache refresher stopped")

			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *Refresher) refresh(ctx context.Context) {
	started := time.Now()

	if _, _, err := w.service.Dashboard(ctx, w.query, true); err != nil {
		logger(ctx).Warn("dashboard refresh failed", logx.Error(fmt.Errorf("refresh dashboard: %w", err)))

		return
	}

	if w.withSales {
		if _, _, err := w.service.Sales(ctx, w.query.League, true); err != nil {
			logger(ctx).Warn("sales refresh failed", logx.Error(fmt.Errorf("refresh sales: %w", err)))
		}
	}

	logger(ctx).Debug("caches refreshed", logx.FieldDurationMs, time.Since(started).Milliseconds())
}
