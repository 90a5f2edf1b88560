// Package events defines the matching related events emitted on the event bus.
//
// Available event types:
//   - MatchRequestEvent: a new matching pass started
//   - DriverScoredEvent: per-driver scoring outcome
//   - OfferEvent: ride-offer delivery result
package events
