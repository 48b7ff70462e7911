package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ResponsesByMode *prometheus.CounterVec
	RecordsSkipped  prometheus.Counter
	StoreErrors     prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ResponsesByMode: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "coordinate_responses_total",
			Help: "Total number of coordinate responses by the mode that produced them.",
		}, []string{"mode"}),
		RecordsSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "coordinate_records_skipped_total",
			Help: "Total number of store records skipped because their fields failed to parse.",
		}),
		StoreErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "coordinate_store_errors_total",
			Help: "Total number of errors received from the table store.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coordinate_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
