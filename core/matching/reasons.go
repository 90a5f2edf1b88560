package matching

import (
	"fmt"
	"strings"

	"github.com/carelift/dispatch/core/model"
)

// warnMarker prefixes reasons that flag a problem rather than a strength.
const warnMarker = "⚠️ "

// MatchReasons renders the ordered, human-readable explanation for a driver's
// score: positive signals first (weekly load, vehicle match, remaining
// capacity), then warning lines for unavailability, concurrent-ride overlap
// and weekly-capacity overage. The lines are derived from the same Breakdown
// quantities as Score, so the text always agrees with the numbers for the
// same context.
func (s Scorer) MatchReasons(d model.DriverProfile, ctx *MatchContext) []string {
	b := s.Breakdown(d, ctx)
	rides := ctx.WeekRides(d.ID)

	var reasons []string
	switch {
	case rides == 0:
		reasons = append(reasons, "No rides this week")
	case rides <= 2:
		reasons = append(reasons, fmt.Sprintf("Low weekly load (%d rides)", rides))
	}

	if overlap := VehicleOverlap(d, ctx.Client); len(overlap) > 0 {
		reasons = append(reasons, "Offers preferred vehicle: "+joinVehicleTypes(overlap))
	}

	if d.MaxRidesPerWeek > 0 && rides < d.MaxRidesPerWeek {
		reasons = append(reasons, fmt.Sprintf("Can take %d more rides this week", d.MaxRidesPerWeek-rides))
	}

	if b.HasUnavailability {
		reasons = append(reasons, warnMarker+"Unavailable during this appointment")
	}
	if b.HasConcurrentRide {
		reasons = append(reasons, fmt.Sprintf("%sConcurrent ride overlaps %.0f%% of this window",
			warnMarker, ctx.OverlapPercent(d.ID)))
	}
	if b.IsOverMaxRides {
		reasons = append(reasons, fmt.Sprintf("%sOver weekly limit by %d rides",
			warnMarker, rides-d.MaxRidesPerWeek))
	}
	return reasons
}

func joinVehicleTypes(types []model.VehicleType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
