// Package matching implements the driver-to-ride matching engine.
//
// Given one appointment and a pool of candidate drivers, the engine computes
// a numeric suitability score per driver, or determines that a driver is
// categorically ineligible. A score combines:
//   - a hard eligibility filter over accessibility requirements (equipment,
//     oxygen, service animal, additional rider),
//   - a population-calibrated load-balancing score,
//   - vehicle-type and weekly-capacity criteria,
//   - tiered penalties for unavailability conflicts, concurrent-ride overlap
//     and weekly-capacity overage.
//
// Key components:
//   - MatchContext: precomputed, read-only aggregate shared across all
//     candidates of one matching pass.
//   - Scorer: pure scoring functions (Score, Breakdown, PerfectMatch,
//     MatchReasons).
//   - MatchManager: orchestrates a full pass — concurrent scoring, ranking,
//     event publication, metrics and decision logging, and optional ride
//     offers over MQTT.
//
// Every scoring function is a stateless computation over its inputs. The
// engine performs no I/O and never mutates driver, client or appointment
// values, so candidates may be scored in parallel with identical results
// regardless of execution order. Which driver is ultimately assigned remains
// a caller decision informed by the ranking.
package matching
