package logging

import (
	"context"
	"time"
)

// Candidate is one scored driver inside a LogRecord.
type Candidate struct {
	DriverID     string `json:"driver_id"`
	Score        int    `json:"score"`
	PerfectMatch bool   `json:"perfect_match"`
}

// LogRecord captures one matching pass: the pool that was scored and the
// ranking that came out of it.
type LogRecord struct {
	Timestamp     time.Time   `json:"timestamp"`
	RequestID     string      `json:"request_id"`
	AppointmentID string      `json:"appointment_id"`
	PoolSize      int         `json:"pool_size"`
	Candidates    []Candidate `json:"candidates"`
	Ineligible    []string    `json:"ineligible"`
}

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start         time.Time
	End           time.Time
	DriverID      string
	AppointmentID string
}

// Matches reports whether the record satisfies the query filters.
func (q LogQuery) Matches(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.AppointmentID != "" && r.AppointmentID != q.AppointmentID {
		return false
	}
	if q.DriverID != "" {
		found := false
		for _, c := range r.Candidates {
			if c.DriverID == q.DriverID {
				found = true
				break
			}
		}
		if !found {
			for _, id := range r.Ineligible {
				if id == q.DriverID {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}
