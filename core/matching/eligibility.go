package matching

import "github.com/carelift/dispatch/core/model"

// MeetsAccessibilityRequirements reports whether the driver can serve the
// client and appointment at all. The driver must accommodate every required
// equipment type, and each needed boolean accommodation. Any gap disqualifies
// the driver outright, which is distinct from a low score.
func MeetsAccessibilityRequirements(d model.DriverProfile, client model.ClientDetails, appt model.Appointment) bool {
	for _, eq := range client.RequiredEquipment {
		if !d.CanAccommodate(eq) {
			return false
		}
	}
	if client.NeedsOxygen && !d.OxygenSupport {
		return false
	}
	if client.HasServiceAnimal && !d.ServiceAnimalSupport {
		return false
	}
	if appt.HasAdditionalRider && !d.AdditionalRiderSupport {
		return false
	}
	return true
}
