package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"hybrid-bess-sim/internal/timeseries"
)

// SeriesFile matches the JSON shape of an exported series file.
type SeriesFile struct {
	ResolutionMin int           `json:"resolution_min"`
	Points        []SeriesPoint `json:"points"`
}

// SeriesPoint is one interval row. SolarMW pointers distinguish "no solar
// column" from "zero production": a file either has solar on every row or on
// none.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	PriceMWh  float64   `json:"price_mwh"`
	SolarMW   *float64  `json:"solar_mw,omitempty"`
}

// LoadSeriesJSON reads a JSON series file into an aligned Series.
func LoadSeriesJSON(path string) (*timeseries.Series, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SeriesFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf.ToSeries()
}

// ToSeries converts the file shape into the engine's read-only form.
func (sf *SeriesFile) ToSeries() (*timeseries.Series, error) {
	if sf.ResolutionMin <= 0 {
		return nil, fmt.Errorf("resolution_min must be > 0")
	}
	if len(sf.Points) == 0 {
		return nil, fmt.Errorf("no points")
	}

	hasSolar := sf.Points[0].SolarMW != nil
	timestamps := make([]time.Time, len(sf.Points))
	prices := make([]float64, len(sf.Points))
	var solar []float64
	if hasSolar {
		solar = make([]float64, len(sf.Points))
	}
	for i, p := range sf.Points {
		timestamps[i] = p.Timestamp
		prices[i] = p.PriceMWh
		if hasSolar {
			if p.SolarMW == nil {
				return nil, fmt.Errorf("point %d missing solar_mw while earlier points have it", i)
			}
			solar[i] = *p.SolarMW
		} else if p.SolarMW != nil {
			return nil, fmt.Errorf("point %d has solar_mw while earlier points do not", i)
		}
	}
	return timeseries.New(timestamps, prices, solar, time.Duration(sf.ResolutionMin)*time.Minute)
}
