package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancy_search_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	HhRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vacancy_search_hh_request_duration_seconds",
			Help:    "Duration of hh.ru API requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
	SearchStatesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancy_search_states_total",
			Help: "Total number of search state transitions by resulting state.",
		},
		[]string{"state"},
	)
	FavoritesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vacancy_search_favorites",
			Help: "Number of vacancies stored in favorites.",
		},
	)
	ReferenceRefreshCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancy_search_reference_refresh_total",
			Help: "Total number of reference data refreshes by result.",
		},
		[]string{"result"},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(HhRequestDuration)
	prometheus.MustRegister(SearchStatesCounter)
	prometheus.MustRegister(FavoritesGauge)
	prometheus.MustRegister(ReferenceRefreshCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
