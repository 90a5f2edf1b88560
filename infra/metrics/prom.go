package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/carelift/dispatch/core/metrics"
)

// PromSink records matching events in Prometheus metrics.
type PromSink struct {
	candidates *prometheus.CounterVec
	scores     prometheus.Histogram
	offers     *prometheus.CounterVec
	pool       prometheus.Gauge
}

// NewPromSink registers matching metrics on the default Prometheus
// registerer. The Prometheus server is started separately via
// StartPromServer.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	candidates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_candidates_total",
		Help: "Total number of drivers scored, by eligibility and perfect-match outcome",
	}, []string{"eligible", "perfect_match"})
	scores := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "match_score",
		Help: "Distribution of driver suitability scores",
		// Scores span roughly -100 (heavily penalised) to 100 (full marks).
		Buckets: prometheus.LinearBuckets(-100, 20, 11),
	})
	offers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ride_offers_total",
		Help: "Total number of ride offers delivered, by driver answer",
	}, []string{"accepted"})
	pool := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "match_pool_size",
		Help: "Number of candidate drivers in the latest matching pass",
	})

	if err := reg.Register(candidates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			candidates = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scores); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scores = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(offers); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			offers = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pool); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pool = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{candidates: candidates, scores: scores, offers: offers, pool: pool}, nil
}

// RecordMatchResults increments the candidate counter and observes scores.
func (s *PromSink) RecordMatchResults(records []coremetrics.MatchRecord) error {
	for _, r := range records {
		s.candidates.WithLabelValues(
			strconv.FormatBool(r.Eligible),
			strconv.FormatBool(r.PerfectMatch),
		).Inc()
		if r.Eligible {
			s.scores.Observe(float64(r.Score))
		}
	}
	return nil
}

// RecordPoolSize sets the gauge to the candidate pool size.
func (s *PromSink) RecordPoolSize(size int) error {
	s.pool.Set(float64(size))
	return nil
}

// RecordOffer counts a delivered ride offer.
func (s *PromSink) RecordOffer(rec coremetrics.OfferRecord) error {
	s.offers.WithLabelValues(strconv.FormatBool(rec.Accepted)).Inc()
	return nil
}
