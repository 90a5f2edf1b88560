package mqtt

import (
	"fmt"
	"sync"
	"time"

	coremqtt "github.com/carelift/dispatch/core/mqtt"
)

// Client mirrors the core OfferClient interface.
type Client = coremqtt.OfferClient

// MockPublisher is a simple offer publisher used in tests.
type MockPublisher struct {
	Offers     map[string]coremqtt.RideOffer
	FailIDs    map[string]bool
	AckResults map[string]bool
	mu         sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Offers:     make(map[string]coremqtt.RideOffer),
		FailIDs:    make(map[string]bool),
		AckResults: make(map[string]bool),
	}
}

// SendOffer records the offer or returns an error if configured to fail.
// Offers to drivers not listed in FailIDs are acknowledged positively.
func (m *MockPublisher) SendOffer(offer coremqtt.RideOffer) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[offer.DriverID] {
		return "", fmt.Errorf("publish failed")
	}
	offer.OfferID = fmt.Sprintf("offer-%s", offer.DriverID)
	m.Offers[offer.DriverID] = offer
	if _, set := m.AckResults[offer.OfferID]; !set {
		m.AckResults[offer.OfferID] = true
	}
	return offer.OfferID, nil
}

// WaitForAck returns the stored acknowledgment immediately.
func (m *MockPublisher) WaitForAck(offerID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	ok, exists := m.AckResults[offerID]
	m.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("unknown offer")
	}
	return ok, nil
}

// Close implements OfferClient.
func (m *MockPublisher) Close() error { return nil }
