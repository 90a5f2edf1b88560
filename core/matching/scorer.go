package matching

import "github.com/carelift/dispatch/core/model"

// Concurrent-ride overlap tiers, in percent of the appointment window.
// Tiers are mutually exclusive and evaluated highest first.
const (
	highOverlapThreshold = 50
	midOverlapThreshold  = 25
)

// ScoreBreakdown itemises the sub-scores and penalties behind a total score
// so callers can display why a score is what it is.
type ScoreBreakdown struct {
	Total int `json:"total"`

	LoadBalance  int `json:"load_balance"`
	VehicleMatch int `json:"vehicle_match"`
	Capacity     int `json:"capacity"`

	UnavailabilityPenalty int `json:"unavailability_penalty"`
	OverlapPenalty        int `json:"overlap_penalty"`
	OverMaxPenalty        int `json:"over_max_penalty"`

	HasUnavailability  bool `json:"has_unavailability"`
	HasConcurrentRide  bool `json:"has_concurrent_ride"`
	IsOverMaxRides     bool `json:"is_over_max_rides"`
	HasVehicleMismatch bool `json:"has_vehicle_mismatch"`
}

// Scorer computes driver suitability scores for one appointment. The penalty
// magnitudes can be tuned; NewScorer returns the production values.
type Scorer struct {
	UnavailabilityPenalty int
	HighOverlapPenalty    int
	MidOverlapPenalty     int
	LowOverlapPenalty     int
	OverMaxPenaltyPerRide int
}

// NewScorer returns a scorer with the production penalty magnitudes.
func NewScorer() Scorer {
	return Scorer{
		UnavailabilityPenalty: 50,
		HighOverlapPenalty:    25,
		MidOverlapPenalty:     15,
		LowOverlapPenalty:     10,
		OverMaxPenaltyPerRide: 5,
	}
}

// Score returns the driver's suitability score for the context's appointment.
// ok is false when the driver is categorically ineligible; callers must
// exclude such drivers from ranking rather than treating the zero score as
// "worst". Scores may be negative: a poor but not disqualified match.
func (s Scorer) Score(d model.DriverProfile, ctx *MatchContext) (score int, ok bool) {
	if !MeetsAccessibilityRequirements(d, ctx.Client, ctx.Appointment) {
		return 0, false
	}
	return s.Breakdown(d, ctx).Total, true
}

// Breakdown computes the same quantities as Score but retains every
// sub-score and penalty individually. It does not apply the eligibility
// filter; pair it with MeetsAccessibilityRequirements when ranking.
func (s Scorer) Breakdown(d model.DriverProfile, ctx *MatchContext) ScoreBreakdown {
	b := ScoreBreakdown{
		LoadBalance:  LoadBalanceScore(d, ctx),
		VehicleMatch: VehicleMatchScore(d, ctx.Client),
		Capacity:     CapacityScore(d, ctx),
	}
	b.HasVehicleMismatch = b.VehicleMatch == 0

	if !IsDriverAvailable(ctx.Blocks(d.ID), ctx.Appointment) {
		b.UnavailabilityPenalty = s.UnavailabilityPenalty
		b.HasUnavailability = true
	}
	if p := s.overlapPenalty(ctx.OverlapPercent(d.ID)); p > 0 {
		b.OverlapPenalty = p
		b.HasConcurrentRide = true
	}
	if d.MaxRidesPerWeek > 0 {
		if over := ctx.WeekRides(d.ID) - d.MaxRidesPerWeek; over > 0 {
			b.OverMaxPenalty = s.OverMaxPenaltyPerRide * over
			b.IsOverMaxRides = true
		}
	}

	b.Total = b.LoadBalance + b.VehicleMatch + b.Capacity -
		b.UnavailabilityPenalty - b.OverlapPenalty - b.OverMaxPenalty
	return b
}

// overlapPenalty maps a concurrent-ride overlap percentage onto the tiered
// penalty scale.
func (s Scorer) overlapPenalty(pct float64) int {
	switch {
	case pct >= highOverlapThreshold:
		return s.HighOverlapPenalty
	case pct >= midOverlapThreshold:
		return s.MidOverlapPenalty
	case pct > 0:
		return s.LowOverlapPenalty
	default:
		return 0
	}
}

// PerfectMatch reports a "clean" candidate: the client's vehicle preference is
// actually offered (not merely absent), the capacity state is usable, and no
// penalty applies. The load-balancing score does not need to be maximal;
// perfect means no red flags, not optimal.
func (s Scorer) PerfectMatch(d model.DriverProfile, ctx *MatchContext) bool {
	if len(VehicleOverlap(d, ctx.Client)) == 0 {
		return false
	}
	b := s.Breakdown(d, ctx)
	return b.Capacity >= 0 &&
		b.UnavailabilityPenalty == 0 &&
		b.OverlapPenalty == 0 &&
		b.OverMaxPenalty == 0
}
