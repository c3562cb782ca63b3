package internal

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quran_api_requests_total",
			Help: "Requests sent to the Quran API, by method and status code (0 for transport failures)",
		},
		[]string{"method", "status"},
	)

	tokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quran_api_token_refreshes_total",
			Help: "Access token refresh attempts, by outcome",
		},
		[]string{"outcome"},
	)

	requestRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quran_api_request_retries_total",
			Help: "Requests resubmitted after a 401 with a fresh access token",
		},
	)
)

func observeRequest(method string, status int) {
	apiRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
