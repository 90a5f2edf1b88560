package mqtt

import (
	"errors"
	"time"
)

// ErrAckTimeout is returned when no acknowledgment arrives before the timeout.
var ErrAckTimeout = errors.New("timeout waiting for offer ack")

// RideOffer is the payload published to a driver's offer topic. The driver
// app answers on the ack topic with the offer id and an accepted flag.
type RideOffer struct {
	OfferID       string `json:"offer_id"`
	DriverID      string `json:"driver_id"`
	AppointmentID string `json:"appointment_id"`
	PickupDate    string `json:"pickup_date"`
	StartTime     string `json:"start_time"`
	Score         int    `json:"score"`
}

// OfferClient delivers ride offers to driver apps and collects their
// acknowledgments.
type OfferClient interface {
	// SendOffer publishes the offer and returns the offer identifier used to
	// track the acknowledgment.
	SendOffer(offer RideOffer) (offerID string, err error)

	// WaitForAck waits for the driver's answer to the given offer or until
	// the timeout expires.
	WaitForAck(offerID string, timeout time.Duration) (bool, error)

	Close() error
}
