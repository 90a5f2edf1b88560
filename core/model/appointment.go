package model

import (
	"fmt"
	"time"
)

// DefaultDurationMinutes is assumed when an appointment carries no estimate.
const DefaultDurationMinutes = 60

// Appointment is a scheduled ride request to be matched with a driver.
type Appointment struct {
	ID string `json:"id"`

	// Date is the calendar day of the ride. Only the date portion is
	// significant.
	Date time.Time `json:"date"`

	// Start is the scheduled pickup time.
	Start TimeOfDay `json:"start"`

	// DurationMinutes is the estimated ride duration. Nil means unknown and
	// defaults to DefaultDurationMinutes; zero is a valid zero-length window.
	DurationMinutes *int `json:"duration_minutes"`

	HasAdditionalRider bool `json:"has_additional_rider"`
}

// Duration returns the estimated duration in minutes, applying the default
// when no estimate is present.
func (a Appointment) Duration() int {
	if a.DurationMinutes == nil {
		return DefaultDurationMinutes
	}
	return *a.DurationMinutes
}

// End returns the end of the appointment window, wrapped at midnight.
func (a Appointment) End() TimeOfDay {
	return a.Start.Add(a.Duration())
}

// Validate checks that the appointment is sound. A negative duration is a
// caller contract violation and is rejected rather than clamped.
func (a Appointment) Validate() error {
	if a.Date.IsZero() {
		return fmt.Errorf("appointment date is required")
	}
	if a.DurationMinutes != nil && *a.DurationMinutes < 0 {
		return fmt.Errorf("appointment %s: duration must not be negative", a.ID)
	}
	return nil
}
