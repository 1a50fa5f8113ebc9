package sink

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	jsonshape "github.com/jsonshape/jsonshape"
)

// PrometheusStats exposes the engine's hierarchical counters as a prometheus
// counter vector labelled with the dot-joined stat path.
type PrometheusStats struct {
	vec *prometheus.CounterVec
}

var _ jsonshape.StatSink = (*PrometheusStats)(nil)

// NewPrometheusStats builds the sink and registers its collector; a nil
// registerer skips registration (useful for tests).
func NewPrometheusStats(namespace string, reg prometheus.Registerer) (*PrometheusStats, error) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jsonshape_stat_total",
		Help:      "Validation statistics keyed by hierarchical stat path.",
	}, []string{"path"})
	if reg != nil {
		if err := reg.Register(vec); err != nil {
			return nil, err
		}
	}
	return &PrometheusStats{vec: vec}, nil
}

// AddStat implements jsonshape.StatSink.
func (s *PrometheusStats) AddStat(delta int64, path ...string) {
	s.vec.WithLabelValues(strings.Join(path, ".")).Add(float64(delta))
}

// Collector exposes the underlying counter vector for manual registration.
func (s *PrometheusStats) Collector() *prometheus.CounterVec { return s.vec }
