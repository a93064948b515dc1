package metrics

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "bitski"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Service collects per-lane call metrics on its own registry so that several
// clients in one process do not clash on the default registerer.
type Service struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

func New() *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Number of JSON-RPC calls by lane and outcome.",
		}, []string{"lane", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Latency of JSON-RPC calls by lane.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"lane"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_fetches_total",
			Help:      "Number of access token fetches by outcome.",
		}, []string{"outcome"}),
	}

	s.registry.MustRegister(s.calls, s.duration, s.tokens)

	return s
}

// Registry exposes the collectors for gathering.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// WriteText writes all gathered metrics in the Prometheus text exposition format.
func (s *Service) WriteText(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return errors.Wrapf(err, "failed to write metric family %s", family.GetName())
		}
	}

	return nil
}

// ObserveCall records a finished call on lane.
func (s *Service) ObserveCall(lane string, err error, elapsed time.Duration) {
	s.calls.WithLabelValues(lane, outcome(err)).Inc()
	s.duration.WithLabelValues(lane).Observe(elapsed.Seconds())
}

// ObserveTokenFetch records a token fetch.
func (s *Service) ObserveTokenFetch(err error) {
	s.tokens.WithLabelValues(outcome(err)).Inc()
}

// Calls returns the counter for lane and outcome.
func (s *Service) Calls(lane, outcome string) prometheus.Counter {
	return s.calls.WithLabelValues(lane, outcome)
}

// TokenFetches returns the token fetch counter for outcome.
func (s *Service) TokenFetches(outcome string) prometheus.Counter {
	return s.tokens.WithLabelValues(outcome)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
