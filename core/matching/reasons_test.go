package matching

import (
	"reflect"
	"testing"
	"time"

	"github.com/carelift/dispatch/core/model"
)

func TestMatchReasonsPositive(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{
		ID:              "d1",
		VehicleTypes:    []model.VehicleType{model.VehicleWheelchairVan, model.VehicleMinivan},
		MaxRidesPerWeek: 5,
	}
	ctx := NewMatchContext(
		apptAt("09:00"),
		model.ClientDetails{PreferredVehicles: []model.VehicleType{model.VehicleWheelchairVan}},
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 2}, {DriverID: "d2", RideCount: 6}},
		nil, nil,
	)

	got := s.MatchReasons(d, ctx)
	want := []string{
		"Low weekly load (2 rides)",
		"Offers preferred vehicle: wheelchair_van",
		"Can take 3 more rides this week",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reasons = %q, want %q", got, want)
	}
}

func TestMatchReasonsNoRides(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{ID: "d1"}
	ctx := ctxWithCounts(map[string]int{"d1": 0, "d2": 3})

	got := s.MatchReasons(d, ctx)
	if len(got) == 0 || got[0] != "No rides this week" {
		t.Errorf("reasons = %q, want leading %q", got, "No rides this week")
	}
}

func TestMatchReasonsWarnings(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{ID: "d1", MaxRidesPerWeek: 4}
	block := model.UnavailabilityBlock{
		DriverID: "d1", Recurring: true, Weekday: model.Weekday(time.Monday), AllDay: true,
	}
	ctx := NewMatchContext(
		apptAt("09:00"),
		model.ClientDetails{},
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 6}, {DriverID: "d2", RideCount: 1}},
		[]model.UnavailabilityBlock{block},
		map[string]float64{"d1": 30},
	)

	got := s.MatchReasons(d, ctx)
	want := []string{
		"⚠️ Unavailable during this appointment",
		"⚠️ Concurrent ride overlaps 30% of this window",
		"⚠️ Over weekly limit by 2 rides",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reasons = %q, want %q", got, want)
	}
}
