package events

import "time"

// MatchRequestEvent is published when a matching pass starts.
type MatchRequestEvent struct {
	RequestID     string
	AppointmentID string
	PoolSize      int
}

// DriverScoredEvent is published for each driver scored during a pass.
type DriverScoredEvent struct {
	RequestID    string
	DriverID     string
	Score        int
	Eligible     bool
	PerfectMatch bool
}

// OfferEvent is published when a ride offer has been delivered (or failed).
type OfferEvent struct {
	OfferID       string
	DriverID      string
	AppointmentID string
	Accepted      bool
	Err           error
	Latency       time.Duration
}
