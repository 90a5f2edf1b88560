package matching

import (
	"testing"
	"time"

	"github.com/carelift/dispatch/core/model"
)

// monday is a known Monday used across availability tests.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func apptAt(start string) model.Appointment {
	s, err := model.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	return model.Appointment{ID: "a1", Date: monday, Start: s}
}

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestIsDriverAvailableNoBlocks(t *testing.T) {
	if !IsDriverAvailable(nil, apptAt("09:00")) {
		t.Error("driver with no blocks should be available")
	}
}

func TestIsDriverAvailableRecurring(t *testing.T) {
	appt := apptAt("09:00")

	allDayMonday := model.UnavailabilityBlock{
		DriverID: "d1", Recurring: true, Weekday: model.Weekday(time.Monday), AllDay: true,
	}
	if IsDriverAvailable([]model.UnavailabilityBlock{allDayMonday}, appt) {
		t.Error("all-day Monday block should conflict with a Monday appointment")
	}

	allDayTuesday := allDayMonday
	allDayTuesday.Weekday = model.Weekday(time.Tuesday)
	if !IsDriverAvailable([]model.UnavailabilityBlock{allDayTuesday}, appt) {
		t.Error("Tuesday block must never affect a Monday appointment")
	}

	timedMonday := model.UnavailabilityBlock{
		DriverID: "d1", Recurring: true, Weekday: model.Weekday(time.Monday),
		Start: mustTime(t, "09:30"), End: mustTime(t, "10:30"),
	}
	if IsDriverAvailable([]model.UnavailabilityBlock{timedMonday}, appt) {
		t.Error("timed block overlapping the window should conflict")
	}

	timedMonday.Start = mustTime(t, "10:00")
	timedMonday.End = mustTime(t, "11:00")
	if !IsDriverAvailable([]model.UnavailabilityBlock{timedMonday}, appt) {
		t.Error("block starting exactly at the appointment end should not conflict")
	}
}

func TestIsDriverAvailableOneOff(t *testing.T) {
	appt := apptAt("09:00")

	vacation := model.UnavailabilityBlock{
		DriverID:  "d1",
		StartDate: monday.AddDate(0, 0, -1),
		EndDate:   monday,
		AllDay:    true,
	}
	if IsDriverAvailable([]model.UnavailabilityBlock{vacation}, appt) {
		t.Error("appointment on the range's last day should conflict (inclusive range)")
	}

	vacation.EndDate = monday.AddDate(0, 0, -1)
	if !IsDriverAvailable([]model.UnavailabilityBlock{vacation}, appt) {
		t.Error("appointment after the range should not conflict")
	}

	timed := model.UnavailabilityBlock{
		DriverID:  "d1",
		StartDate: monday,
		EndDate:   monday,
		Start:     mustTime(t, "08:00"),
		End:       mustTime(t, "09:30"),
	}
	if IsDriverAvailable([]model.UnavailabilityBlock{timed}, appt) {
		t.Error("timed one-off block overlapping the window should conflict")
	}
}
