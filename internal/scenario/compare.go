// Package scenario runs the battery-only and hybrid scenarios over the same
// window and produces a side-by-side comparison.
package scenario

import (
	"fmt"
	"sync"

	"hybrid-bess-sim/internal/finance"
	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/sim"
	"hybrid-bess-sim/internal/timeseries"
)

// Result bundles one run's aggregated metrics with its full trace.
type Result struct {
	Metrics finance.Metrics  `json:"metrics"`
	Records []sim.FlowRecord `json:"records,omitempty"`
}

// Comparison is the output of Compare. Delta is hybrid − batteryOnly for
// every metric.
type Comparison struct {
	BatteryOnly Result          `json:"battery_only"`
	Hybrid      Result          `json:"hybrid"`
	Delta       finance.Metrics `json:"delta"`
}

// Run executes a single scenario: simulate, then evaluate.
func Run(cfg *model.Configuration, series *timeseries.Series) (*Result, error) {
	res, err := sim.Simulate(cfg, series)
	if err != nil {
		return nil, err
	}
	return &Result{
		Metrics: finance.Evaluate(res, cfg.Tariffs, cfg.Market),
		Records: res.Records,
	}, nil
}

// Compare runs the engine twice over the same series: once with the solar
// column suppressed (battery-only) and once with it active (hybrid). The two
// runs share no mutable state and execute concurrently.
func Compare(cfg *model.Configuration, series *timeseries.Series) (*Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		wg          sync.WaitGroup
		batteryOnly *Result
		hybrid      *Result
		battErr     error
		hybErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		batteryOnly, battErr = Run(cfg, series.WithoutSolar())
	}()
	go func() {
		defer wg.Done()
		hybrid, hybErr = Run(cfg, series)
	}()
	wg.Wait()

	if battErr != nil {
		return nil, fmt.Errorf("battery-only scenario: %w", battErr)
	}
	if hybErr != nil {
		return nil, fmt.Errorf("hybrid scenario: %w", hybErr)
	}

	return &Comparison{
		BatteryOnly: *batteryOnly,
		Hybrid:      *hybrid,
		Delta:       hybrid.Metrics.Sub(batteryOnly.Metrics),
	}, nil
}
