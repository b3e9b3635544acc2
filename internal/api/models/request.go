// Package models defines the JSON request and response shapes of the HTTP API.
package models

import (
	"fmt"
	"time"

	"hybrid-bess-sim/internal/config"
	"hybrid-bess-sim/internal/data"
	"hybrid-bess-sim/internal/timeseries"
)

// SimulateRequest runs a single scenario over the supplied series.
type SimulateRequest struct {
	Config  config.Config   `json:"config" binding:"required"`
	Series  SeriesPayload   `json:"series" binding:"required"`
	Options SimulateOptions `json:"options,omitempty"`
}

// CompareRequest runs the battery-only vs hybrid comparison.
type CompareRequest struct {
	Config  config.Config   `json:"config" binding:"required"`
	Series  SeriesPayload   `json:"series" binding:"required"`
	Options SimulateOptions `json:"options,omitempty"`
}

// AnalyzeRequest computes price statistics and window suggestions.
type AnalyzeRequest struct {
	Series      SeriesPayload `json:"series" binding:"required"`
	WindowHours int           `json:"window_hours,omitempty"`
}

// SeriesPayload supplies the time series either inline or as a server-local
// file path (CSV or JSON, decided by extension).
type SeriesPayload struct {
	ResolutionMin int                `json:"resolution_min,omitempty"`
	Points        []data.SeriesPoint `json:"points,omitempty"`
	Path          string             `json:"path,omitempty"`
}

// SimulateOptions holds optional request parameters.
type SimulateOptions struct {
	// IncludeLedger returns the full per-interval trace. Defaults to false;
	// traces for long ranges are large.
	IncludeLedger bool `json:"include_ledger,omitempty"`
}

// ToSeries resolves the payload into an aligned Series.
func (p SeriesPayload) ToSeries() (*timeseries.Series, error) {
	switch {
	case len(p.Points) > 0 && p.Path != "":
		return nil, fmt.Errorf("series: points and path are mutually exclusive")
	case len(p.Points) > 0:
		sf := data.SeriesFile{ResolutionMin: p.ResolutionMin, Points: p.Points}
		return sf.ToSeries()
	case p.Path != "":
		if isJSONPath(p.Path) {
			return data.LoadSeriesJSON(p.Path)
		}
		if p.ResolutionMin <= 0 {
			return nil, fmt.Errorf("series: resolution_min is required for CSV files")
		}
		return data.LoadSeriesCSV(p.Path, time.Duration(p.ResolutionMin)*time.Minute)
	default:
		return nil, fmt.Errorf("series: either points or path is required")
	}
}

func isJSONPath(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".json"
}
