package models

import (
	"hybrid-bess-sim/internal/analysis"
	"hybrid-bess-sim/internal/finance"
	"hybrid-bess-sim/internal/scenario"
	"hybrid-bess-sim/internal/sim"
)

// SimulateResponse is the result of a single-scenario run.
type SimulateResponse struct {
	ID      string           `json:"id"`
	Status  string           `json:"status"`
	Metrics finance.Metrics  `json:"metrics"`
	Ledger  []sim.FlowRecord `json:"ledger,omitempty"`
}

// CompareResponse is the result of the battery-only vs hybrid comparison.
type CompareResponse struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Cached      bool            `json:"cached"`
	BatteryOnly ScenarioPayload `json:"battery_only"`
	Hybrid      ScenarioPayload `json:"hybrid"`
	Delta       finance.Metrics `json:"delta"`
}

// ScenarioPayload is one side of a comparison.
type ScenarioPayload struct {
	Metrics finance.Metrics  `json:"metrics"`
	Ledger  []sim.FlowRecord `json:"ledger,omitempty"`
}

// AnalyzeResponse carries price statistics and suggested dispatch windows.
type AnalyzeResponse struct {
	Stats     analysis.PriceStats       `json:"stats"`
	Suggested analysis.WindowSuggestion `json:"suggested_windows"`
}

// RegionsResponse lists the supported price regions.
type RegionsResponse struct {
	Regions []string `json:"regions"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewScenarioPayload converts an engine result, optionally with its trace.
func NewScenarioPayload(r scenario.Result, includeLedger bool) ScenarioPayload {
	p := ScenarioPayload{Metrics: r.Metrics}
	if includeLedger {
		p.Ledger = r.Records
	}
	return p
}
