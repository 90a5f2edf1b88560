package matching

import (
	"math"

	"github.com/carelift/dispatch/core/model"
)

const (
	// VehicleMatchMax is the all-or-nothing vehicle criterion credit.
	VehicleMatchMax = 30

	// CapacityMax caps the remaining-weekly-capacity contribution.
	CapacityMax = 20
)

// VehicleOverlap returns the driver's vehicle types that appear in the
// client's preference list, in the driver's listed order.
func VehicleOverlap(d model.DriverProfile, client model.ClientDetails) []model.VehicleType {
	var overlap []model.VehicleType
	for _, vt := range d.VehicleTypes {
		for _, pref := range client.PreferredVehicles {
			if vt == pref {
				overlap = append(overlap, vt)
				break
			}
		}
	}
	return overlap
}

// VehicleMatchScore returns VehicleMatchMax when the client has no vehicle
// preference or the driver offers at least one preferred type, otherwise 0.
// There is no partial credit.
func VehicleMatchScore(d model.DriverProfile, client model.ClientDetails) int {
	if len(client.PreferredVehicles) == 0 {
		return VehicleMatchMax
	}
	if len(VehicleOverlap(d, client)) > 0 {
		return VehicleMatchMax
	}
	return 0
}

// CapacityScore rewards remaining weekly capacity proportionally. Drivers
// without a weekly cap get full credit; drivers at or above their cap get
// none.
func CapacityScore(d model.DriverProfile, ctx *MatchContext) int {
	if d.MaxRidesPerWeek <= 0 {
		return CapacityMax
	}
	current := ctx.WeekRides(d.ID)
	if current >= d.MaxRidesPerWeek {
		return 0
	}
	remaining := float64(d.MaxRidesPerWeek-current) / float64(d.MaxRidesPerWeek)
	return int(math.Round(CapacityMax * remaining))
}
