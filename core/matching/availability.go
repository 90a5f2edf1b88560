package matching

import (
	"time"

	"github.com/carelift/dispatch/core/model"
)

// IsDriverAvailable reports whether none of the given unavailability blocks
// conflict with the appointment window. Recurring blocks apply on their
// weekday only; one-off blocks apply when the appointment date falls inside
// the inclusive date range. All-day blocks conflict outright, timed blocks
// conflict when their [start, end) window overlaps the appointment's.
func IsDriverAvailable(blocks []model.UnavailabilityBlock, appt model.Appointment) bool {
	start := appt.Start
	end := appt.End()
	for _, b := range blocks {
		if b.Recurring {
			if appt.Date.Weekday() != time.Weekday(b.Weekday) {
				continue
			}
		} else if !blockCoversDate(b, appt.Date) {
			continue
		}
		if b.AllDay {
			return false
		}
		if model.RangesOverlap(start, end, b.Start, b.End) {
			return false
		}
	}
	return true
}

// blockCoversDate tests the appointment date against the block's inclusive
// date range, comparing calendar days only.
func blockCoversDate(b model.UnavailabilityBlock, day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(b.StartDate)) && !d.After(dateOnly(b.EndDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
