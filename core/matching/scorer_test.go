package matching

import (
	"testing"
	"time"

	"github.com/carelift/dispatch/core/model"
)

func TestScoreIneligibleDriver(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{ID: "d1"}
	ctx := NewMatchContext(
		apptAt("09:00"),
		model.ClientDetails{NeedsOxygen: true},
		nil, nil, nil,
	)
	if _, ok := s.Score(d, ctx); ok {
		t.Error("driver without oxygen support must be ineligible, not low-scored")
	}
}

func TestBreakdownFullMarks(t *testing.T) {
	s := NewScorer()
	// Lone driver, zero rides, no preference, no cap: neutral load score plus
	// both criterion maxima.
	d := model.DriverProfile{ID: "d1", VehicleTypes: []model.VehicleType{model.VehicleSedan}}
	ctx := ctxWithCounts(map[string]int{"d1": 0})

	b := s.Breakdown(d, ctx)
	if b.LoadBalance != NeutralLoadScore || b.VehicleMatch != VehicleMatchMax || b.Capacity != CapacityMax {
		t.Fatalf("sub-scores = %d/%d/%d, want %d/%d/%d",
			b.LoadBalance, b.VehicleMatch, b.Capacity, NeutralLoadScore, VehicleMatchMax, CapacityMax)
	}
	if b.Total != 75 {
		t.Errorf("Total = %d, want 75", b.Total)
	}
	if b.HasVehicleMismatch || b.HasUnavailability || b.HasConcurrentRide || b.IsOverMaxRides {
		t.Errorf("unexpected flags in clean breakdown: %+v", b)
	}
}

func TestBreakdownVehicleMismatch(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{
		ID:              "d1",
		VehicleTypes:    []model.VehicleType{model.VehicleSedan},
		MaxRidesPerWeek: 10,
	}
	ctx := NewMatchContext(
		apptAt("09:00"),
		model.ClientDetails{PreferredVehicles: []model.VehicleType{model.VehicleWheelchairVan}},
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 0}},
		nil, nil,
	)

	b := s.Breakdown(d, ctx)
	if !b.HasVehicleMismatch {
		t.Error("expected vehicle mismatch flag")
	}
	// 25 load + 0 vehicle + 20 capacity.
	if b.Total != 45 {
		t.Errorf("Total = %d, want 45", b.Total)
	}
	if s.PerfectMatch(d, ctx) {
		t.Error("mismatched vehicle can never be a perfect match")
	}
}

func TestBreakdownPenalties(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{ID: "d1", MaxRidesPerWeek: 5}
	block := model.UnavailabilityBlock{
		DriverID: "d1", Recurring: true, Weekday: model.Weekday(time.Monday), AllDay: true,
	}
	ctx := NewMatchContext(
		apptAt("09:00"),
		model.ClientDetails{},
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 7}},
		[]model.UnavailabilityBlock{block},
		map[string]float64{"d1": 60},
	)

	b := s.Breakdown(d, ctx)
	if b.UnavailabilityPenalty != 50 || !b.HasUnavailability {
		t.Errorf("unavailability penalty = %d (%v), want 50", b.UnavailabilityPenalty, b.HasUnavailability)
	}
	if b.OverlapPenalty != 25 || !b.HasConcurrentRide {
		t.Errorf("overlap penalty = %d, want 25 for 60%% overlap", b.OverlapPenalty)
	}
	if b.OverMaxPenalty != 10 || !b.IsOverMaxRides {
		t.Errorf("over-max penalty = %d, want 10 for 2 rides over", b.OverMaxPenalty)
	}
	// 25 load + 30 vehicle + 0 capacity - 85 penalties.
	if b.Total != -30 {
		t.Errorf("Total = %d, want -30", b.Total)
	}

	score, ok := s.Score(d, ctx)
	if !ok {
		t.Fatal("penalised driver is still eligible")
	}
	if score != b.Total {
		t.Errorf("Score = %d, Breakdown.Total = %d", score, b.Total)
	}
}

func TestOverlapPenaltyTiers(t *testing.T) {
	s := NewScorer()
	cases := []struct {
		pct  float64
		want int
	}{
		{0, 0},
		{10, 10},
		{24.9, 10},
		{25, 15},
		{49.9, 15},
		{50, 25},
		{100, 25},
	}
	for _, c := range cases {
		if got := s.overlapPenalty(c.pct); got != c.want {
			t.Errorf("overlapPenalty(%v) = %d, want %d", c.pct, got, c.want)
		}
	}
}

func TestPerfectMatch(t *testing.T) {
	s := NewScorer()
	d := model.DriverProfile{
		ID:              "d1",
		VehicleTypes:    []model.VehicleType{model.VehicleWheelchairVan},
		MaxRidesPerWeek: 10,
	}
	client := model.ClientDetails{PreferredVehicles: []model.VehicleType{model.VehicleWheelchairVan}}

	clean := NewMatchContext(apptAt("09:00"), client,
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 3}}, nil, nil)
	if !s.PerfectMatch(d, clean) {
		t.Error("clean candidate with preference overlap should be a perfect match")
	}

	// No stated preference means no overlap, so "perfect" cannot apply.
	noPref := NewMatchContext(apptAt("09:00"), model.ClientDetails{},
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 3}}, nil, nil)
	if s.PerfectMatch(d, noPref) {
		t.Error("perfect match requires an actual preference overlap")
	}

	withOverlap := NewMatchContext(apptAt("09:00"), client,
		[]model.DriverRideCount{{DriverID: "d1", RideCount: 3}}, nil,
		map[string]float64{"d1": 5})
	if s.PerfectMatch(d, withOverlap) {
		t.Error("any concurrent-ride overlap disqualifies a perfect match")
	}
}
