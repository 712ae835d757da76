package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPollerDuration(t *testing.T) {
	calls := 0
	f := RecordPollerDuration("test", func(ctx context.Context) error {
		calls++
		if calls == 2 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, f(t.Context()))
	require.Error(t, f(t.Context()))
	assert.Equal(t, 2, calls)

	var m dto.Metric
	observer := pollerDurationHistogram.WithLabelValues("test", Error.String())
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
}

func TestRecordPoolAmounts(t *testing.T) {
	RecordPoolAmounts("pool", 100, 40, 10)

	assert.InDelta(t, 100, value(t, poolGrantedGauge.WithLabelValues("pool")), 0)
	assert.InDelta(t, 40, value(t, poolWithdrawnGauge.WithLabelValues("pool")), 0)
	assert.InDelta(t, 10, value(t, poolClaimableGauge.WithLabelValues("pool")), 0)
}

func TestRecordClaim(t *testing.T) {
	RecordClaim("success")
	RecordClaim("success")
	RecordClaimedAmount("USDC", 250)

	assert.InDelta(t, 2, value(t, claimsCounter.WithLabelValues("success")), 0)
	assert.InDelta(t, 250, value(t, claimedAmountCounter.WithLabelValues("USDC")), 0)
}

func value(t *testing.T, metric prometheus.Metric) float64 {
	var m dto.Metric
	require.NoError(t, metric.Write(&m))
	if m.Gauge != nil {
		return m.GetGauge().GetValue()
	}
	return m.GetCounter().GetValue()
}
