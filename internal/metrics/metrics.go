package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ScoringPassesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_scoring_passes_total",
			Help: "Total number of full dataset scoring passes.",
		},
	)
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_pipeline_duration_seconds",
			Help:    "Duration of each filter/sort pipeline run in seconds.",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5},
		},
	)
	DigestGenerationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_digest_generations_total",
			Help: "Total number of digests generated.",
		},
	)
	DigestCacheHitsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_digest_cache_hits_total",
			Help: "Total number of digest reads served without recomputation.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ScoringPassesCounter)
	prometheus.MustRegister(PipelineDuration)
	prometheus.MustRegister(DigestGenerationsCounter)
	prometheus.MustRegister(DigestCacheHitsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
