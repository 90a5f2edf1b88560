package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carelift/dispatch/core/events"
	"github.com/carelift/dispatch/core/logger"
	"github.com/carelift/dispatch/core/matching/logging"
	"github.com/carelift/dispatch/core/metrics"
	"github.com/carelift/dispatch/core/model"
	"github.com/carelift/dispatch/core/mqtt"
	"github.com/carelift/dispatch/internal/eventbus"
)

// RankedDriver is one scored candidate in a ranking.
type RankedDriver struct {
	DriverID     string         `json:"driver_id"`
	Score        int            `json:"score"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
	PerfectMatch bool           `json:"perfect_match"`
	Reasons      []string       `json:"reasons"`
}

// RankResult is the outcome of scoring a candidate pool against one
// appointment. Candidates are sorted by score, best first; categorically
// ineligible drivers are listed separately because a missing score is not a
// bad score.
type RankResult struct {
	RequestID     string         `json:"request_id"`
	AppointmentID string         `json:"appointment_id"`
	Candidates    []RankedDriver `json:"candidates"`
	Ineligible    []string       `json:"ineligible"`
}

// MatchManager orchestrates matching passes: it scores every candidate
// concurrently, ranks them, emits events, records metrics and appends
// decision-log records. It can also deliver ride offers once the caller has
// picked a driver.
type MatchManager struct {
	scorer     Scorer
	logger     logger.Logger
	metrics    metrics.MetricsSink
	bus        eventbus.EventBus
	publisher  mqtt.OfferClient
	ackTimeout time.Duration

	mu    sync.Mutex
	store logging.LogStore
}

// NewMatchManager creates a manager. The metrics sink, bus and publisher are
// optional; the logger is not. ackTimeout bounds the wait for a driver's
// answer to an offer and defaults to five seconds.
func NewMatchManager(scorer Scorer, sink metrics.MetricsSink, bus eventbus.EventBus, publisher mqtt.OfferClient, ackTimeout time.Duration, log logger.Logger) (*MatchManager, error) {
	if log == nil {
		return nil, fmt.Errorf("matching: nil logger provided to NewMatchManager")
	}
	if ackTimeout <= 0 {
		ackTimeout = 5 * time.Second
	}
	return &MatchManager{
		scorer:     scorer,
		logger:     log,
		metrics:    sink,
		bus:        bus,
		publisher:  publisher,
		ackTimeout: ackTimeout,
	}, nil
}

// SetLogStore configures the store used to persist match decisions.
func (m *MatchManager) SetLogStore(store logging.LogStore) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// Rank scores every driver in the pool against the context's appointment and
// returns the sorted ranking. Scoring runs one goroutine per driver; results
// are identical regardless of execution order because the context is
// read-only and ties are broken by driver id.
func (m *MatchManager) Rank(ctx context.Context, mctx *MatchContext, drivers []model.DriverProfile) RankResult {
	result := RankResult{
		RequestID:     uuid.NewString(),
		AppointmentID: mctx.Appointment.ID,
	}
	if m.bus != nil {
		m.bus.Publish(events.MatchRequestEvent{
			RequestID:     result.RequestID,
			AppointmentID: result.AppointmentID,
			PoolSize:      len(drivers),
		})
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	now := time.Now()
	records := make([]metrics.MatchRecord, 0, len(drivers))
	collect := func(d model.DriverProfile, ranked *RankedDriver) {
		mu.Lock()
		defer mu.Unlock()
		rec := metrics.MatchRecord{
			RequestID:     result.RequestID,
			AppointmentID: result.AppointmentID,
			DriverID:      d.ID,
			Time:          now,
		}
		if ranked == nil {
			result.Ineligible = append(result.Ineligible, d.ID)
		} else {
			result.Candidates = append(result.Candidates, *ranked)
			rec.Eligible = true
			rec.Score = ranked.Score
			rec.PerfectMatch = ranked.PerfectMatch
		}
		records = append(records, rec)
	}

	for _, d := range drivers {
		wg.Add(1)
		go func(d model.DriverProfile) {
			defer wg.Done()
			if !MeetsAccessibilityRequirements(d, mctx.Client, mctx.Appointment) {
				collect(d, nil)
				return
			}
			b := m.scorer.Breakdown(d, mctx)
			collect(d, &RankedDriver{
				DriverID:     d.ID,
				Score:        b.Total,
				Breakdown:    b,
				PerfectMatch: m.scorer.PerfectMatch(d, mctx),
				Reasons:      m.scorer.MatchReasons(d, mctx),
			})
		}(d)
	}
	wg.Wait()

	sort.Slice(result.Candidates, func(i, j int) bool {
		a, b := result.Candidates[i], result.Candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.DriverID < b.DriverID
	})
	sort.Strings(result.Ineligible)

	m.logger.Infof("ranked %d of %d drivers for appointment %s",
		len(result.Candidates), len(drivers), result.AppointmentID)
	m.publishScores(result)
	m.recordMetrics(records, len(drivers))
	m.appendLog(ctx, result, len(drivers), now)
	return result
}

func (m *MatchManager) publishScores(res RankResult) {
	if m.bus == nil {
		return
	}
	for _, c := range res.Candidates {
		m.bus.Publish(events.DriverScoredEvent{
			RequestID:    res.RequestID,
			DriverID:     c.DriverID,
			Score:        c.Score,
			Eligible:     true,
			PerfectMatch: c.PerfectMatch,
		})
	}
	for _, id := range res.Ineligible {
		m.bus.Publish(events.DriverScoredEvent{RequestID: res.RequestID, DriverID: id})
	}
}

func (m *MatchManager) recordMetrics(records []metrics.MatchRecord, poolSize int) {
	if m.metrics == nil {
		return
	}
	if err := m.metrics.RecordMatchResults(records); err != nil {
		m.logger.Errorf("metrics error: %v", err)
	}
	if pr, ok := m.metrics.(metrics.PoolSizeRecorder); ok {
		if err := pr.RecordPoolSize(poolSize); err != nil {
			m.logger.Errorf("pool size metrics error: %v", err)
		}
	}
}

func (m *MatchManager) appendLog(ctx context.Context, res RankResult, poolSize int, ts time.Time) {
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store == nil {
		return
	}
	rec := logging.LogRecord{
		Timestamp:     ts,
		RequestID:     res.RequestID,
		AppointmentID: res.AppointmentID,
		PoolSize:      poolSize,
		Ineligible:    res.Ineligible,
	}
	for _, c := range res.Candidates {
		rec.Candidates = append(rec.Candidates, logging.Candidate{
			DriverID:     c.DriverID,
			Score:        c.Score,
			PerfectMatch: c.PerfectMatch,
		})
	}
	if err := store.Append(ctx, rec); err != nil {
		m.logger.Errorf("match log append: %v", err)
	}
}

// Offer delivers a ride offer to the chosen driver and waits for the driver
// app's acknowledgment. Picking the driver is the caller's decision; the
// manager only delivers the offer.
func (m *MatchManager) Offer(driverID string, appt model.Appointment, score int) (bool, error) {
	if m.publisher == nil {
		return false, fmt.Errorf("matching: no offer publisher configured")
	}
	start := time.Now()
	offerID, err := m.publisher.SendOffer(mqtt.RideOffer{
		DriverID:      driverID,
		AppointmentID: appt.ID,
		PickupDate:    appt.Date.Format("2006-01-02"),
		StartTime:     appt.Start.String(),
		Score:         score,
	})
	if err != nil {
		m.emitOffer(events.OfferEvent{DriverID: driverID, AppointmentID: appt.ID, Err: err})
		return false, err
	}
	accepted, err := m.publisher.WaitForAck(offerID, m.ackTimeout)
	ev := events.OfferEvent{
		OfferID:       offerID,
		DriverID:      driverID,
		AppointmentID: appt.ID,
		Accepted:      accepted && err == nil,
		Err:           err,
		Latency:       time.Since(start),
	}
	m.emitOffer(ev)
	if or, ok := m.metrics.(metrics.OfferRecorder); ok && m.metrics != nil {
		rec := metrics.OfferRecord{
			OfferID:       offerID,
			DriverID:      driverID,
			AppointmentID: appt.ID,
			Accepted:      ev.Accepted,
			Latency:       ev.Latency,
			Time:          start,
		}
		if merr := or.RecordOffer(rec); merr != nil {
			m.logger.Errorf("offer metrics error: %v", merr)
		}
	}
	return ev.Accepted, err
}

func (m *MatchManager) emitOffer(ev events.OfferEvent) {
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

// Close releases resources held by the manager.
func (m *MatchManager) Close() error {
	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			return err
		}
	}
	if m.bus != nil {
		m.bus.Close()
	}
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store != nil {
		return store.Close()
	}
	return nil
}
