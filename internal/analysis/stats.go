// Package analysis computes descriptive price statistics over an input series.
// The dashboard uses these to pick sensible dispatch windows before running a
// full simulation.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hybrid-bess-sim/internal/timeseries"
)

// PriceStats is a period-level summary of a price series.
type PriceStats struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`

	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P05  float64 `json:"p05"`
	P95  float64 `json:"p95"`

	// SpreadP95P05 is a battery-size-independent measure of arbitrage
	// opportunity in the period.
	SpreadP95P05 float64 `json:"spread_p95_p05"`
}

// ComputePriceStats summarizes the prices of a series.
func ComputePriceStats(s *timeseries.Series) PriceStats {
	st := PriceStats{
		Start: s.Start(),
		End:   s.End(),
		Count: s.Len(),
	}

	vals := make([]float64, 0, s.Len())
	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, p := range s.Points() {
		v := p.PriceMWh
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	st.Min = minv
	st.Max = maxv
	st.Mean = sum / float64(len(vals))
	st.P05 = percentileSorted(vals, 0.05)
	st.P95 = percentileSorted(vals, 0.95)
	st.SpreadP95P05 = st.P95 - st.P05
	return st
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// WindowSuggestion names the cheapest and most expensive contiguous
// hour-of-day blocks of the period, as "HH:MM" bounds suitable for the
// dispatch window configuration.
type WindowSuggestion struct {
	ChargeStart    string `json:"charge_start"`
	ChargeEnd      string `json:"charge_end"`
	DischargeStart string `json:"discharge_start"`
	DischargeEnd   string `json:"discharge_end"`
}

// SuggestWindows averages prices by hour of day and returns the cheapest
// contiguous block of width hours as the charge window and the most expensive
// as the discharge window. If the two blocks would overlap, the discharge
// block is taken from the non-overlapping remainder.
func SuggestWindows(s *timeseries.Series, width int) WindowSuggestion {
	if width <= 0 || width > 12 {
		width = 4
	}

	var sums [24]float64
	var counts [24]int
	for _, p := range s.Points() {
		h := p.Timestamp.Hour()
		sums[h] += p.PriceMWh
		counts[h]++
	}
	var mean [24]float64
	for h := 0; h < 24; h++ {
		if counts[h] > 0 {
			mean[h] = sums[h] / float64(counts[h])
		}
	}

	blockMean := func(start int) float64 {
		total := 0.0
		for i := 0; i < width; i++ {
			total += mean[(start+i)%24]
		}
		return total / float64(width)
	}

	cheapest := 0
	for h := 1; h < 24; h++ {
		if blockMean(h) < blockMean(cheapest) {
			cheapest = h
		}
	}

	overlaps := func(a, b int) bool {
		for i := 0; i < width; i++ {
			for j := 0; j < width; j++ {
				if (a+i)%24 == (b+j)%24 {
					return true
				}
			}
		}
		return false
	}

	dearest := -1
	for h := 0; h < 24; h++ {
		if overlaps(h, cheapest) {
			continue
		}
		if dearest < 0 || blockMean(h) > blockMean(dearest) {
			dearest = h
		}
	}
	if dearest < 0 {
		dearest = (cheapest + width) % 24
	}

	return WindowSuggestion{
		ChargeStart:    fmt.Sprintf("%02d:00", cheapest),
		ChargeEnd:      fmt.Sprintf("%02d:00", (cheapest+width)%24),
		DischargeStart: fmt.Sprintf("%02d:00", dearest),
		DischargeEnd:   fmt.Sprintf("%02d:00", (dearest+width)%24),
	}
}
