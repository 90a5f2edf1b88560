package matching

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/carelift/dispatch/core/model"
)

const (
	// NeutralLoadScore is returned when the population carries no signal to
	// distinguish drivers.
	NeutralLoadScore = 25

	// MaxLoadScore caps the load-balancing contribution.
	MaxLoadScore = 50
)

// LoadBalanceScore converts the driver's weekly ride count into a score in
// [0, MaxLoadScore] relative to the population's distribution, so the score
// self-calibrates regardless of absolute ride volume. Drivers below the mean
// are rewarded; two population standard deviations saturate the scale.
func LoadBalanceScore(d model.DriverProfile, ctx *MatchContext) int {
	if len(ctx.Population) == 0 {
		return NeutralLoadScore
	}
	counts := make([]float64, len(ctx.Population))
	allZero := true
	for i, rc := range ctx.Population {
		counts[i] = float64(rc.RideCount)
		if rc.RideCount != 0 {
			allZero = false
		}
	}
	if allZero {
		return NeutralLoadScore
	}

	// Population statistics (divide by N): the pass scores the whole pool,
	// not a sample of it.
	mean, stdDev := stat.PopMeanStdDev(counts, nil)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return NeutralLoadScore
	}

	deviation := (mean - float64(ctx.WeekRides(d.ID))) / stdDev
	score := math.Round(NeutralLoadScore + deviation/2*NeutralLoadScore)
	if score < 0 {
		return 0
	}
	if score > MaxLoadScore {
		return MaxLoadScore
	}
	return int(score)
}
