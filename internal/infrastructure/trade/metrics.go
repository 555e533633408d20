package trade

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashboard_trade_requests_total",
		Help: "Requests issued against the trade API, by endpoint and status.",
	}, []string{"endpoint", "status"})

	metricRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashboard_trade_rate_limited_total",
		Help: "429 responses received from the trade API, by endpoint.",
	}, []string{"endpoint"})
)
