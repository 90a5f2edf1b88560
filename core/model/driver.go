package model

import "fmt"

// EquipmentType identifies a category of mobility equipment a ride may need
// to carry.
type EquipmentType string

const (
	EquipmentWheelchair      EquipmentType = "wheelchair"
	EquipmentPowerWheelchair EquipmentType = "power_wheelchair"
	EquipmentScooter         EquipmentType = "scooter"
	EquipmentWalker          EquipmentType = "walker"
	EquipmentStretcher       EquipmentType = "stretcher"
)

// VehicleType identifies the kind of vehicle a driver operates.
type VehicleType string

const (
	VehicleSedan         VehicleType = "sedan"
	VehicleSUV           VehicleType = "suv"
	VehicleMinivan       VehicleType = "minivan"
	VehicleWheelchairVan VehicleType = "wheelchair_van"
)

// DriverProfile describes a candidate driver. Profiles are immutable inputs
// owned by the caller; the matching engine never mutates them.
type DriverProfile struct {
	ID string `json:"id"`

	// Equipment lists the mobility-equipment types the driver's vehicle can
	// accommodate.
	Equipment []EquipmentType `json:"equipment"`

	OxygenSupport          bool `json:"oxygen_support"`
	ServiceAnimalSupport   bool `json:"service_animal_support"`
	AdditionalRiderSupport bool `json:"additional_rider_support"`

	// VehicleTypes lists the vehicle types the driver offers.
	VehicleTypes []VehicleType `json:"vehicle_types"`

	// MaxRidesPerWeek caps the driver's weekly workload. Zero means no cap.
	MaxRidesPerWeek int `json:"max_rides_per_week"`
}

// Validate checks that the profile is sound.
func (d DriverProfile) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("driver id is required")
	}
	if d.MaxRidesPerWeek < 0 {
		return fmt.Errorf("driver %s: max rides per week must not be negative", d.ID)
	}
	return nil
}

// CanAccommodate reports whether the driver can carry the given equipment type.
func (d DriverProfile) CanAccommodate(eq EquipmentType) bool {
	for _, e := range d.Equipment {
		if e == eq {
			return true
		}
	}
	return false
}

// OffersVehicle reports whether the driver operates the given vehicle type.
func (d DriverProfile) OffersVehicle(vt VehicleType) bool {
	for _, v := range d.VehicleTypes {
		if v == vt {
			return true
		}
	}
	return false
}

// DriverRideCount pairs a driver with their ride count for the current week.
// The full population's counts feed the load-balancing statistics.
type DriverRideCount struct {
	DriverID  string `json:"driver_id"`
	RideCount int    `json:"ride_count"`
}
