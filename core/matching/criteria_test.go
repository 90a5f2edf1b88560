package matching

import (
	"testing"

	"github.com/carelift/dispatch/core/model"
)

func TestVehicleMatchScore(t *testing.T) {
	vanDriver := model.DriverProfile{
		ID:           "d1",
		VehicleTypes: []model.VehicleType{model.VehicleWheelchairVan},
	}

	noPreference := model.ClientDetails{}
	if got := VehicleMatchScore(vanDriver, noPreference); got != VehicleMatchMax {
		t.Errorf("no preference = %d, want %d", got, VehicleMatchMax)
	}

	wantsVan := model.ClientDetails{
		PreferredVehicles: []model.VehicleType{model.VehicleWheelchairVan, model.VehicleMinivan},
	}
	if got := VehicleMatchScore(vanDriver, wantsVan); got != VehicleMatchMax {
		t.Errorf("preference satisfied = %d, want %d", got, VehicleMatchMax)
	}

	wantsSedan := model.ClientDetails{PreferredVehicles: []model.VehicleType{model.VehicleSedan}}
	if got := VehicleMatchScore(vanDriver, wantsSedan); got != 0 {
		t.Errorf("mismatch = %d, want 0", got)
	}
}

func TestVehicleOverlapKeepsDriverOrder(t *testing.T) {
	d := model.DriverProfile{
		ID:           "d1",
		VehicleTypes: []model.VehicleType{model.VehicleSUV, model.VehicleSedan, model.VehicleMinivan},
	}
	client := model.ClientDetails{
		PreferredVehicles: []model.VehicleType{model.VehicleMinivan, model.VehicleSUV},
	}
	overlap := VehicleOverlap(d, client)
	if len(overlap) != 2 || overlap[0] != model.VehicleSUV || overlap[1] != model.VehicleMinivan {
		t.Errorf("overlap = %v, want [suv minivan]", overlap)
	}
}

func TestCapacityScore(t *testing.T) {
	cases := []struct {
		name    string
		max     int
		current int
		want    int
	}{
		{"no cap", 0, 100, CapacityMax},
		{"empty week", 10, 0, CapacityMax},
		{"half used", 10, 5, 10},
		{"one third left", 3, 2, 7},
		{"at cap", 10, 10, 0},
		{"over cap", 10, 12, 0},
	}
	for _, c := range cases {
		d := model.DriverProfile{ID: "d1", MaxRidesPerWeek: c.max}
		ctx := ctxWithCounts(map[string]int{"d1": c.current})
		if got := CapacityScore(d, ctx); got != c.want {
			t.Errorf("%s: CapacityScore = %d, want %d", c.name, got, c.want)
		}
	}
}
