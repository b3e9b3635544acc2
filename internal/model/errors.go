package model

import (
	"fmt"
	"time"
)

// ConfigError reports a configuration field that violates its constraint.
// Validation runs before any simulation, so a ConfigError always means the
// engine never started.
type ConfigError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Param, e.Value, e.Reason)
}

func configErr(param string, value any, reason string) *ConfigError {
	return &ConfigError{Param: param, Value: value, Reason: reason}
}

// DataGapError reports a timestamp inside the requested range that the input
// series does not cover. The engine fails fast on gaps; it never forward-fills.
type DataGapError struct {
	Timestamp time.Time
	Series    string // "price" or "solar"
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("%s series has no value at %s", e.Series, e.Timestamp.Format(time.RFC3339))
}

// InvariantError reports a violated physical invariant during simulation
// (SOC outside its band, or an energy-balance mismatch). It indicates a logic
// fault and is always fatal; it is never silently corrected.
type InvariantError struct {
	Timestamp time.Time
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("simulation invariant violated at %s: %s", e.Timestamp.Format(time.RFC3339), e.Detail)
}
