package rides

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carelift/dispatch/core/matching"
	"github.com/carelift/dispatch/core/model"
)

// MatchRequest is the payload accepted by the match endpoint. The caller
// supplies everything the engine needs: the appointment, the client's
// accessibility profile, the candidate pool and the precomputed per-driver
// context data.
type MatchRequest struct {
	Appointment model.Appointment   `json:"appointment"`
	Client      model.ClientDetails `json:"client"`

	Drivers []model.DriverProfile `json:"drivers"`

	Unavailability []model.UnavailabilityBlock `json:"unavailability"`

	// WeeklyRideCounts holds the whole population's counts, not just the
	// candidates'.
	WeeklyRideCounts []model.DriverRideCount `json:"weekly_ride_counts"`

	// ConcurrentOverlapPercent maps driver id to how much an already
	// assigned ride overlaps this appointment's window, in [0,100].
	ConcurrentOverlapPercent map[string]float64 `json:"concurrent_overlap_percent"`
}

// Validate checks the request before scoring.
func (r MatchRequest) Validate() error {
	if err := r.Appointment.Validate(); err != nil {
		return err
	}
	if len(r.Drivers) == 0 {
		return fmt.Errorf("no candidate drivers provided")
	}
	for _, d := range r.Drivers {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, b := range r.Unavailability {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for id, pct := range r.ConcurrentOverlapPercent {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("driver %s: overlap percent %v out of range", id, pct)
		}
	}
	return nil
}

// NewMatchHandler returns an HTTP handler exposing the matching engine via
// POST /api/rides/match. The response is the ranked candidate list with
// per-driver breakdowns, reasons and perfect-match flags.
func NewMatchHandler(mgr *matching.MatchManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req MatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mctx := matching.NewMatchContext(
			req.Appointment,
			req.Client,
			req.WeeklyRideCounts,
			req.Unavailability,
			req.ConcurrentOverlapPercent,
		)
		result := mgr.Rank(r.Context(), mctx, req.Drivers)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
