package matching

import (
	"github.com/carelift/dispatch/core/model"
)

// DriverContext aggregates the precomputed per-driver inputs for one matching
// pass. Keeping them in a single struct guarantees a driver cannot end up with
// partially populated context fields.
type DriverContext struct {
	// Blocks are the driver's declared unavailability periods.
	Blocks []model.UnavailabilityBlock

	// WeekRides is the driver's ride count for the current week.
	WeekRides int

	// OverlapPercent is how much another already-assigned ride for this
	// driver overlaps the appointment window, in [0,100].
	OverlapPercent float64
}

// MatchContext is the read-only aggregate shared by all candidate drivers of
// one matching pass. It is built once per request by the caller, who owns the
// underlying data fetches, and discarded after use. No field is mutated during
// scoring, so it is safe for concurrent use.
type MatchContext struct {
	Appointment model.Appointment
	Client      model.ClientDetails

	// Population holds the whole driver population's weekly ride counts,
	// used to compute the load-balancing statistics once per pass.
	Population []model.DriverRideCount

	drivers map[string]DriverContext
}

// NewMatchContext assembles the context in a single pass over the inputs.
// Blocks are grouped by owning driver; weekly ride counts come from the
// population list; overlaps maps driver id to the concurrent-ride overlap
// percentage.
func NewMatchContext(
	appt model.Appointment,
	client model.ClientDetails,
	population []model.DriverRideCount,
	blocks []model.UnavailabilityBlock,
	overlaps map[string]float64,
) *MatchContext {
	drivers := make(map[string]DriverContext, len(population))
	for _, rc := range population {
		dc := drivers[rc.DriverID]
		dc.WeekRides = rc.RideCount
		drivers[rc.DriverID] = dc
	}
	for _, b := range blocks {
		dc := drivers[b.DriverID]
		dc.Blocks = append(dc.Blocks, b)
		drivers[b.DriverID] = dc
	}
	for id, pct := range overlaps {
		dc := drivers[id]
		dc.OverlapPercent = pct
		drivers[id] = dc
	}
	return &MatchContext{
		Appointment: appt,
		Client:      client,
		Population:  population,
		drivers:     drivers,
	}
}

// Driver returns the aggregated context for the given driver. Unknown drivers
// yield the zero context: no blocks, no rides, no overlap.
func (c *MatchContext) Driver(id string) DriverContext {
	return c.drivers[id]
}

// WeekRides returns the driver's ride count for the current week.
func (c *MatchContext) WeekRides(id string) int {
	return c.drivers[id].WeekRides
}

// Blocks returns the driver's unavailability blocks.
func (c *MatchContext) Blocks(id string) []model.UnavailabilityBlock {
	return c.drivers[id].Blocks
}

// OverlapPercent returns the driver's concurrent-ride overlap percentage.
func (c *MatchContext) OverlapPercent(id string) float64 {
	return c.drivers[id].OverlapPercent
}
