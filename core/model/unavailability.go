package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Weekday wraps time.Weekday so that JSON carries the English day name
// instead of an integer.
type Weekday time.Weekday

// ParseWeekday converts a day name such as "Monday" into a Weekday.
func ParseWeekday(name string) (Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return Weekday(d), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

func (w Weekday) String() string { return time.Weekday(w).String() }

// MarshalJSON encodes the weekday as its English name.
func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON decodes an English day name.
func (w *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// UnavailabilityBlock is a period during which a driver cannot take rides,
// either weekly recurring by day name or a one-off date range.
type UnavailabilityBlock struct {
	DriverID string `json:"driver_id"`

	// Recurring selects the weekly form. Recurring blocks carry a Weekday
	// and no date range; one-off blocks carry an inclusive date range.
	Recurring bool    `json:"recurring"`
	Weekday   Weekday `json:"weekday,omitempty"`

	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`

	// AllDay blocks the whole day. When false both times must be present.
	AllDay bool      `json:"all_day"`
	Start  TimeOfDay `json:"start,omitempty"`
	End    TimeOfDay `json:"end,omitempty"`
}

// Validate checks the block's structural invariants.
func (b UnavailabilityBlock) Validate() error {
	if b.DriverID == "" {
		return fmt.Errorf("unavailability block: driver id is required")
	}
	if !b.Recurring {
		if b.StartDate.IsZero() || b.EndDate.IsZero() {
			return fmt.Errorf("unavailability block for %s: one-off blocks need a date range", b.DriverID)
		}
		if b.EndDate.Before(b.StartDate) {
			return fmt.Errorf("unavailability block for %s: end date before start date", b.DriverID)
		}
	}
	if !b.AllDay && b.Start == b.End {
		return fmt.Errorf("unavailability block for %s: timed blocks need a non-empty window", b.DriverID)
	}
	return nil
}
