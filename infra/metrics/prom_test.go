package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/carelift/dispatch/core/metrics"
)

func TestPromSinkRecordsMatches(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	ps := sink.(*PromSink)

	records := []coremetrics.MatchRecord{
		{DriverID: "d1", Eligible: true, Score: 75, PerfectMatch: true, Time: time.Now()},
		{DriverID: "d2", Eligible: true, Score: 40, Time: time.Now()},
		{DriverID: "d3", Time: time.Now()},
	}
	require.NoError(t, ps.RecordMatchResults(records))

	require.Equal(t, float64(1), testutil.ToFloat64(ps.candidates.WithLabelValues("true", "true")))
	require.Equal(t, float64(1), testutil.ToFloat64(ps.candidates.WithLabelValues("true", "false")))
	require.Equal(t, float64(1), testutil.ToFloat64(ps.candidates.WithLabelValues("false", "false")))

	// Only eligible drivers contribute score observations.
	mfs, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "match_score" {
			found = true
			require.EqualValues(t, 2, mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	require.True(t, found, "match_score histogram not registered")
}

func TestPromSinkRecordsPoolAndOffers(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	ps := sink.(*PromSink)

	require.NoError(t, ps.RecordPoolSize(7))
	require.Equal(t, float64(7), testutil.ToFloat64(ps.pool))

	require.NoError(t, ps.RecordOffer(coremetrics.OfferRecord{DriverID: "d1", Accepted: true}))
	require.NoError(t, ps.RecordOffer(coremetrics.OfferRecord{DriverID: "d2"}))
	require.Equal(t, float64(1), testutil.ToFloat64(ps.offers.WithLabelValues("true")))
	require.Equal(t, float64(1), testutil.ToFloat64(ps.offers.WithLabelValues("false")))
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	// Registering on the same registry reuses the existing collectors.
	_, err = NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
}

func TestMultiSinkFansOut(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	multi := NewMultiSink(sink, coremetrics.NopSink{})

	records := []coremetrics.MatchRecord{{DriverID: "d1", Eligible: true, Score: 10}}
	require.NoError(t, multi.RecordMatchResults(records))

	ps := sink.(*PromSink)
	require.Equal(t, float64(1), testutil.ToFloat64(ps.candidates.WithLabelValues("true", "false")))

	// MultiSink forwards the optional recorder interfaces too.
	require.NoError(t, multi.RecordPoolSize(3))
	require.Equal(t, float64(3), testutil.ToFloat64(ps.pool))
}
