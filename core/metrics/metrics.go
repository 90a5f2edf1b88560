package metrics

import "time"

// MatchRecord represents one scored driver in a matching pass.
type MatchRecord struct {
	RequestID     string
	AppointmentID string
	DriverID      string
	Score         int
	Eligible      bool
	PerfectMatch  bool
	Time          time.Time
}

// MetricsSink records matching results for observability purposes.
type MetricsSink interface {
	RecordMatchResults(records []MatchRecord) error
}

// PoolSizeRecorder is implemented by sinks able to record the size of the
// candidate pool of a matching pass.
type PoolSizeRecorder interface {
	RecordPoolSize(size int) error
}

// OfferRecord captures the outcome of a ride offer sent to a driver.
type OfferRecord struct {
	OfferID       string
	DriverID      string
	AppointmentID string
	Accepted      bool
	Latency       time.Duration
	Time          time.Time
}

// OfferRecorder is implemented by sinks able to record ride-offer outcomes.
type OfferRecorder interface {
	RecordOffer(rec OfferRecord) error
}

// NopSink implements every recorder interface with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatchResults([]MatchRecord) error { return nil }
func (NopSink) RecordPoolSize(int) error               { return nil }
func (NopSink) RecordOffer(OfferRecord) error          { return nil }
