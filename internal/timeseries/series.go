// Package timeseries holds the aligned price/solar input consumed by the
// simulation engine. A Series is built once by a data adapter and is
// read-only afterwards; the engine never mutates it.
package timeseries

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"hybrid-bess-sim/internal/model"
)

// Point is one interval of input data. SolarMW is meaningful only when the
// owning Series has a solar column.
type Point struct {
	Timestamp time.Time
	PriceMWh  float64
	SolarMW   float64
}

// Series is an ordered, gap-checked sequence of price points, optionally
// carrying an aligned solar production column on the same time index.
type Series struct {
	points      []Point
	resolution  time.Duration
	hasSolar    bool
	fingerprint string
}

// New builds a Series from parallel slices. solar may be nil for a price-only
// series; otherwise it must have the same length as timestamps. Timestamps
// must be strictly increasing and evenly spaced at resolution; any gap is
// rejected with a DataGapError naming the first missing timestamp.
func New(timestamps []time.Time, prices []float64, solar []float64, resolution time.Duration) (*Series, error) {
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("empty series")
	}
	if len(prices) != len(timestamps) {
		return nil, fmt.Errorf("price count %d does not match timestamp count %d", len(prices), len(timestamps))
	}
	if solar != nil && len(solar) != len(timestamps) {
		return nil, fmt.Errorf("solar count %d does not match timestamp count %d", len(solar), len(timestamps))
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("resolution must be > 0")
	}

	points := make([]Point, len(timestamps))
	for i, ts := range timestamps {
		if i > 0 {
			expect := timestamps[i-1].Add(resolution)
			if !ts.Equal(expect) {
				if ts.After(expect) {
					return nil, &model.DataGapError{Timestamp: expect, Series: "price"}
				}
				return nil, fmt.Errorf("timestamps not strictly increasing at index %d (%s)", i, ts.Format(time.RFC3339))
			}
		}
		points[i] = Point{Timestamp: ts, PriceMWh: prices[i]}
		if solar != nil {
			points[i].SolarMW = solar[i]
		}
	}

	s := &Series{
		points:     points,
		resolution: resolution,
		hasSolar:   solar != nil,
	}
	s.fingerprint = s.computeFingerprint()
	return s, nil
}

func (s *Series) Len() int                  { return len(s.points) }
func (s *Series) At(i int) Point            { return s.points[i] }
func (s *Series) HasSolar() bool            { return s.hasSolar }
func (s *Series) Resolution() time.Duration { return s.resolution }

// Start is the timestamp of the first interval.
func (s *Series) Start() time.Time { return s.points[0].Timestamp }

// End is the timestamp of the last interval (its start, not its end).
func (s *Series) End() time.Time { return s.points[len(s.points)-1].Timestamp }

// Points returns the backing slice. Callers must treat it as read-only.
func (s *Series) Points() []Point { return s.points }

// WithoutSolar returns a view of the same series with the solar column
// suppressed. The Scenario Comparator uses this for the battery-only run.
func (s *Series) WithoutSolar() *Series {
	if !s.hasSolar {
		return s
	}
	out := &Series{
		points:     s.points,
		resolution: s.resolution,
		hasSolar:   false,
	}
	out.fingerprint = s.fingerprint + ":nosolar"
	return out
}

// Range returns the sub-series covering [start, end] at the series resolution.
// It fails with a DataGapError if the requested range is not fully covered.
func (s *Series) Range(start, end time.Time) (*Series, error) {
	if start.Before(s.Start()) {
		return nil, &model.DataGapError{Timestamp: start, Series: "price"}
	}
	if end.After(s.End()) {
		return nil, &model.DataGapError{Timestamp: s.End().Add(s.resolution), Series: "price"}
	}
	lo := 0
	for lo < len(s.points) && s.points[lo].Timestamp.Before(start) {
		lo++
	}
	hi := len(s.points)
	for hi > lo && s.points[hi-1].Timestamp.After(end) {
		hi--
	}
	if lo >= hi {
		return nil, &model.DataGapError{Timestamp: start, Series: "price"}
	}
	out := &Series{
		points:     s.points[lo:hi],
		resolution: s.resolution,
		hasSolar:   s.hasSolar,
	}
	out.fingerprint = out.computeFingerprint()
	return out, nil
}

// Fingerprint is a content hash of the series, stable across identical inputs.
// It keys the result cache together with the configuration hash.
func (s *Series) Fingerprint() string { return s.fingerprint }

func (s *Series) computeFingerprint() string {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(s.resolution))
	h.Write(buf[:])
	for _, p := range s.points {
		binary.BigEndian.PutUint64(buf[:], uint64(p.Timestamp.Unix()))
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(int64(p.PriceMWh*1e6)))
		h.Write(buf[:])
		if s.hasSolar {
			binary.BigEndian.PutUint64(buf[:], uint64(int64(p.SolarMW*1e6)))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
