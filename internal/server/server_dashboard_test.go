package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"stashboard/internal/domain/service/dashboard"
	"stashboard/internal/domain/service/rates"
	"stashboard/internal/infrastructure/trade"
	"stashboard/internal/server"
	"stashboard/pkg/rest"
)

type stubService struct {
	overview     dashboard.Overview
	summary      dashboard.SalesSummary
	entries      []rates.Entry
	err          error
	resets       int
	lastQuery    dashboard.Query
	lastForce    bool
	lastLeague   string
}

func (s *stubService) Dashboard(_ context.Context, query dashboard.Query, force bool) (dashboard.Overview, time.Time, error) {
	s.lastQuery = query
	s.lastForce = force

	if s.err != nil {
		return dashboard.Overview{}, time.Time{}, s.err
	}

	return s.overview, time.Now(), nil
}

func (s *stubService) Sales(_ context.Context, league string, force bool) (dashboard.SalesSummary, time.Time, error) {
	s.lastLeague = league
	s.lastForce = force

	if s.err != nil {
		return dashboard.SalesSummary{}, time.Time{}, s.err
	}

	return s.summary, time.Now(), nil
}

func (s *stubService) RateListing(_ context.Context, league string, _ bool) ([]rates.Entry, error) {
	s.lastLeague = league

	if s.err != nil {
		return nil, s.err
	}

	return s.entries, nil
}

func (s *stubService) Reset() {
	s.resets++
}

func testRouter(service *stubService) chi.Router {
	router := chi.NewRouter()

	server.NewServer(server.NewDashboardServer(service, server.Defaults{
		Account:        "tester",
		League:         "Standard",
		Realm:          "poe2",
		ThresholdHours: 12,
	})).RegisterRoutes(router)

	return router
}

func TestGetDashboard(t *testing.T) {
	rq := require.New(t)

	service := &stubService{
		overview: dashboard.Overview{ThresholdHours: 12, TotalListings: 3},
	}
	router := testRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/dashboard?threshold=6&force=true", nil))

	rq.Equal(http.StatusOK, recorder.Code)
	rq.True(service.lastForce)
	rq.Equal("tester", service.lastQuery.Account)
	rq.Equal("Standard", service.lastQuery.League)
	rq.Equal(6, service.lastQuery.ThresholdHours)

	var response rest.Dashboard
	rq.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	rq.Equal(3, response.TotalListings)
	rq.Equal("tester", response.Account)
}

func TestGetDashboardQueryOverridesDefaults(t *testing.T) {
	rq := require.New(t)

	service := &stubService{}
	router := testRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(
		http.MethodGet, "/v1/dashboard?account=other&league=Hardcore", nil))

	rq.Equal(http.StatusOK, recorder.Code)
	rq.Equal("other", service.lastQuery.Account)
	rq.Equal("Hardcore", service.lastQuery.League)
	rq.Equal(12, service.lastQuery.ThresholdHours)
}

func TestPostDashboard(t *testing.T) {
	rq := require.New(t)

	service := &stubService{}
	router := testRouter(service)

	body := `{"account":"someone","league":"Standard","realm":"poe2","staleThresholdHours":24}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(
		http.MethodPost, "/v1/dashboard", strings.NewReader(body)))

	rq.Equal(http.StatusOK, recorder.Code)
	rq.Equal("someone", service.lastQuery.Account)
	rq.Equal(24, service.lastQuery.ThresholdHours)
}

func TestPostDashboardValidation(t *testing.T) {
	rq := require.New(t)

	router := testRouter(&stubService{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(
		http.MethodPost, "/v1/dashboard", strings.NewReader(`{"league":"Standard"}`)))

	rq.Equal(http.StatusBadRequest, recorder.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expected     int
		expectedCode rest.ErrorCode
		messagePart  string
	}{
		{
			name:         "missing session",
			err:          trade.ErrNoSession,
			expected:     http.StatusUnauthorized,
			expectedCode: "SessionMissing",
		},
		{
			name:         "expired session",
			err:          trade.ErrSessionExpired,
			expected:     http.StatusForbidden,
			expectedCode: "SessionExpired",
		},
		{
			name:         "rate limited",
			err:          &trade.RateLimitedError{RetryAfter: 30 * time.Second},
			expected:     http.StatusTooManyRequests,
			expectedCode: "RateLimited",
		},
		{
			name:         "upstream failure",
			err:          &trade.StatusError{Endpoint: "fetch", StatusCode: http.StatusBadGateway},
			expected:     http.StatusInternalServerError,
			expectedCode: "UpstreamError",
			messagePart:  "502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			router := testRouter(&stubService{err: tt.err})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

			rq.Equal(tt.expected, recorder.Code)

			var response rest.Error
			rq.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
			rq.Equal(tt.expectedCode, response.Code)
			rq.NotEmpty(response.Message)

			if tt.messagePart != "" {
				rq.Contains(response.Message, tt.messagePart)
			}
		})
	}
}

func TestGetSales(t *testing.T) {
	rq := require.New(t)

	service := &stubService{
		summary: dashboard.SalesSummary{
			TotalTrades:      2,
			TotalChaosIncome: 60,
			HoursElapsed:     2,
			ChaosPerHour:     30,
		},
	}
	router := testRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	rq.Equal(http.StatusOK, recorder.Code)
	rq.Equal("Standard", service.lastLeague)

	var response rest.SalesSummary
	rq.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	rq.Equal(2, response.TotalTrades)
	rq.InDelta(30, response.ChaosPerHour, 0.001)
}

func TestGetRates(t *testing.T) {
	rq := require.New(t)

	service := &stubService{
		entries: []rates.Entry{
			{ID: "divine", DisplayName: "Divine", Value: 150},
			{ID: "chaos", DisplayName: "Chaos", Value: 1},
		},
	}
	router := testRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rates", nil))

	rq.Equal(http.StatusOK, recorder.Code)

	var response []rest.Rate
	rq.NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	rq.Len(response, 2)
	rq.Equal("Divine", response[0].DisplayName)
}

func TestPostReset(t *testing.T) {
	rq := require.New(t)

	service := &stubService{}
	router := testRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/reset", nil))

	rq.Equal(http.StatusOK, recorder.Code)
	rq.Equal(1, service.resets)
}
