package metrics

import coremetrics "github.com/carelift/dispatch/core/metrics"

// MultiSink fans every record out to several sinks. The first error wins but
// does not stop the remaining sinks from recording.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordMatchResults(records []coremetrics.MatchRecord) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordMatchResults(records); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiSink) RecordPoolSize(size int) error {
	var first error
	for _, s := range m.sinks {
		if pr, ok := s.(coremetrics.PoolSizeRecorder); ok {
			if err := pr.RecordPoolSize(size); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

func (m *MultiSink) RecordOffer(rec coremetrics.OfferRecord) error {
	var first error
	for _, s := range m.sinks {
		if or, ok := s.(coremetrics.OfferRecorder); ok {
			if err := or.RecordOffer(rec); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
