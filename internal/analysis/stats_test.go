package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-bess-sim/internal/timeseries"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func series(t *testing.T, prices []float64) *timeseries.Series {
	t.Helper()
	ts := make([]time.Time, len(prices))
	for i := range ts {
		ts[i] = t0.Add(time.Duration(i) * time.Hour)
	}
	s, err := timeseries.New(ts, prices, nil, time.Hour)
	require.NoError(t, err)
	return s
}

func TestComputePriceStats(t *testing.T) {
	st := ComputePriceStats(series(t, []float64{10, 20, 30, 40, 50}))

	assert.Equal(t, 5, st.Count)
	assert.Equal(t, t0, st.Start)
	assert.Equal(t, t0.Add(4*time.Hour), st.End)
	assert.InDelta(t, 10, st.Min, 1e-9)
	assert.InDelta(t, 50, st.Max, 1e-9)
	assert.InDelta(t, 30, st.Mean, 1e-9)
	// linear interpolation over 5 order stats
	assert.InDelta(t, 12, st.P05, 1e-9)
	assert.InDelta(t, 48, st.P95, 1e-9)
	assert.InDelta(t, 36, st.SpreadP95P05, 1e-9)
}

func TestComputePriceStats_SinglePoint(t *testing.T) {
	st := ComputePriceStats(series(t, []float64{75}))
	assert.InDelta(t, 75, st.Min, 1e-9)
	assert.InDelta(t, 75, st.Max, 1e-9)
	assert.InDelta(t, 75, st.P05, 1e-9)
	assert.InDelta(t, 75, st.P95, 1e-9)
	assert.Zero(t, st.SpreadP95P05)
}

func TestPercentileSorted(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1, percentileSorted(sorted, 0), 1e-9)
	assert.InDelta(t, 4, percentileSorted(sorted, 1), 1e-9)
	assert.InDelta(t, 2.5, percentileSorted(sorted, 0.5), 1e-9)
	assert.Zero(t, percentileSorted(nil, 0.5))
}

func TestSuggestWindows_PicksCheapAndDearBlocks(t *testing.T) {
	// Two days: cheap overnight 01:00-05:00, expensive evening 17:00-21:00.
	prices := make([]float64, 48)
	for i := range prices {
		h := i % 24
		switch {
		case h >= 1 && h < 5:
			prices[i] = 10
		case h >= 17 && h < 21:
			prices[i] = 200
		default:
			prices[i] = 60
		}
	}
	sug := SuggestWindows(series(t, prices), 4)

	assert.Equal(t, "01:00", sug.ChargeStart)
	assert.Equal(t, "05:00", sug.ChargeEnd)
	assert.Equal(t, "17:00", sug.DischargeStart)
	assert.Equal(t, "21:00", sug.DischargeEnd)
}

func TestSuggestWindows_BlocksNeverOverlap(t *testing.T) {
	// Flat prices: any block ties; the suggestion must still be disjoint.
	prices := make([]float64, 24)
	for i := range prices {
		prices[i] = 50
	}
	sug := SuggestWindows(series(t, prices), 6)

	assert.NotEqual(t, sug.ChargeStart, sug.DischargeStart)
}

func TestSuggestWindows_InvalidWidthDefaults(t *testing.T) {
	prices := make([]float64, 24)
	for i := range prices {
		prices[i] = float64(i)
	}
	sug := SuggestWindows(series(t, prices), 0)

	// width falls back to 4: cheapest block starts at hour 0
	assert.Equal(t, "00:00", sug.ChargeStart)
	assert.Equal(t, "04:00", sug.ChargeEnd)
	assert.Equal(t, "20:00", sug.DischargeStart)
	assert.Equal(t, "00:00", sug.DischargeEnd)
}
