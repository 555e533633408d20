package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"git.appkode.ru/pub/go/failure"

	"stashboard/internal/domain/service/dashboard"
	"stashboard/internal/domain/service/rates"
	"stashboard/pkg/errcodes"
	"stashboard/pkg/httpx/reply"
	"stashboard/pkg/httpx/req"
	"stashboard/pkg/rest"
)

type dashboardService interface {
	Dashboard(ctx context.Context, query dashboard.Query, force bool) (dashboard.Overview, time.Time, error)
	Sales(ctx context.Context, league string, force bool) (dashboard.SalesSummary, time.Time, error)
	RateListing(ctx context.Context, league string, force bool) ([]rates.Entry, error)
	Reset()
}

// Defaults fill request fields the caller omitted, sourced from config.
type Defaults struct {
	Account        string
	League         string
	Realm          string
	ThresholdHours int
}

type DashboardServer struct {
	service  dashboardService
	defaults Defaults
	now      func() time.Time
}

func NewDashboardServer(service dashboardService, defaults Defaults) DashboardServer {
	return DashboardServer{
		service:  service,
		defaults: defaults,
		now:      time.Now,
	}
}

func (s DashboardServer) getV1Dashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query, err := s.queryFromURL(r)
	if err != nil {
		return fmt.Errorf("queryFromURL: %w", err)
	}

	force, err := req.QueryBool(r, "force")
	if err != nil {
		return fmt.Errorf("req.QueryBool: %w", err)
	}

	overview, fetchedAt, err := s.service.Dashboard(ctx, query, force)
	if err != nil {
		return asFailure(fmt.Errorf("service.Dashboard: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDashboard(query, overview, fetchedAt, s.now()))

	return nil
}

func (s DashboardServer) postV1Dashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.DashboardRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	force, err := req.QueryBool(r, "force")
	if err != nil {
		return fmt.Errorf("req.QueryBool: %w", err)
	}

	query := dashboard.Query{
		Account:        request.Account,
		League:         request.League,
		Realm:          request.Realm,
		ThresholdHours: request.StaleThresholdHours,
	}

	overview, fetchedAt, err := s.service.Dashboard(ctx, query, force)
	if err != nil {
		return asFailure(fmt.Errorf("service.Dashboard: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDashboard(query, overview, fetchedAt, s.now()))

	return nil
}

func (s DashboardServer) getV1Sales(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	league, err := s.league(r)
	if err != nil {
		return fmt.Errorf("league: %w", err)
	}

	force, err := req.QueryBool(r, "force")
	if err != nil {
		return fmt.Errorf("req.QueryBool: %w", err)
	}

	summary, fetchedAt, err := s.service.Sales(ctx, league, force)
	if err != nil {
		return asFailure(fmt.Errorf("service.Sales: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSalesSummary(league, summary, fetchedAt, s.now()))

	return nil
}

func (s DashboardServer) getV1Rates(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	league, err := s.league(r)
	if err != nil {
		return fmt.Errorf("league: %w", err)
	}

	force, err := req.QueryBool(r, "force")
	if err != nil {
		return fmt.Errorf("req.QueryBool: %w", err)
	}

	entries, err := s.service.RateListing(ctx, league, force)
	if err != nil {
		return asFailure(fmt.Errorf("service.RateListing: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTRates(entries))

	return nil
}

func (s DashboardServer) postV1Reset(w http.ResponseWriter, _ *http.Request) error {
	s.service.Reset()

	reply.OK(w)

	return nil
}

func (s DashboardServer) queryFromURL(r *http.Request) (dashboard.Query, error) {
	query := dashboard.Query{
		Account: r.URL.Query().Get("account"),
		League:  r.URL.Query().Get("league"),
		Realm:   r.URL.Query().Get("realm"),
	}

	if query.Account == "" {
		query.Account = s.defaults.Account
	}

	if query.League == "" {
		query.League = s.defaults.League
	}

	if query.Realm == "" {
		query.Realm = s.defaults.Realm
	}

	threshold, err := req.QueryInt(r, "threshold", s.defaults.ThresholdHours)
	if err != nil {
		return dashboard.Query{}, fmt.Errorf("req.QueryInt: %w", err)
	}

	query.ThresholdHours = threshold

	if query.Account == "" {
		return dashboard.Query{}, failure.NewInvalidArgumentError(
			"account is required",
			failure.WithCode(errcodes.InvalidAccount),
			failure.WithDescription("Pass ?account= or configure a default account"),
		)
	}

	if query.League == "" {
		return dashboard.Query{}, failure.NewInvalidArgumentError(
			"league is required",
			failure.WithCode(errcodes.InvalidLeague),
			failure.WithDescription("Pass ?league= or configure a default league"),
		)
	}

	if query.ThresholdHours < 0 {
		return dashboard.Query{}, failure.NewInvalidArgumentError(
			"threshold must be positive",
			failure.WithCode(errcodes.InvalidThreshold),
			failure.WithDescription("Stale threshold must be a positive number of hours"),
		)
	}

	return query, nil
}

func (s DashboardServer) league(r *http.Request) (string, error) {
	league := r.URL.Query().Get("league")
	if league == "" {
		league = s.defaults.League
	}

	if league == "" {
		return "", failure.NewInvalidArgumentError(
			"league is required",
			failure.WithCode(errcodes.InvalidLeague),
			failure.WithDescription("Pass ?league= or configure a default league"),
		)
	}

	return league, nil
}
