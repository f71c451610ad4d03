package pkgmetric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "datavalidator"

// Metrics holds the instruments the validation service reports on.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
	uploadBytes prometheus.Histogram
}

// New builds a Metrics on a fresh private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Completed validation requests partitioned by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Wall time spent validating a single upload.",
			Buckets:   prometheus.DefBuckets,
		}),
		uploadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_bytes",
			Help:      "Size distribution of accepted upload payloads.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}
}

// ObserveValidation records one finished validation with its outcome label.
func (m *Metrics) ObserveValidation(outcome string, seconds float64) {
	m.validations.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}

// ObserveUploadSize records the byte size of an accepted upload.
func (m *Metrics) ObserveUploadSize(size int64) {
	m.uploadBytes.Observe(float64(size))
}

// TrackTempFiles registers a gauge that reports the live temp-file count.
func (m *Metrics) TrackTempFiles(count func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "temp_files",
		Help:      "Uploaded files currently held in temporary storage.",
	}, count)
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
