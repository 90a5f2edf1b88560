package model

// ClientDetails describes the accessibility needs and preferences of the
// client taking the ride. Immutable input to the matching engine.
type ClientDetails struct {
	// RequiredEquipment lists the mobility-equipment types the ride must
	// accommodate. A driver must cover every entry to be eligible.
	RequiredEquipment []EquipmentType `json:"required_equipment"`

	NeedsOxygen      bool `json:"needs_oxygen"`
	HasServiceAnimal bool `json:"has_service_animal"`

	// PreferredVehicles lists acceptable vehicle types. Empty means no
	// preference.
	PreferredVehicles []VehicleType `json:"preferred_vehicles"`
}
