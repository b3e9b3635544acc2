package sim

import "time"

// Action is a human-friendly operating mode for an interval.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// FlowRecord captures the energy flows of one interval. It is immutable once
// emitted; the ordered sequence of records is the simulation trace.
//
// All energies are grid-side MWh for the interval:
// - GridImportMWh: energy purchased from the grid (battery charging)
// - GridExportMWh: energy sold to the grid (battery discharge + PV export)
// - BatteryChargeMWh: energy entering the battery path, grid + PV combined,
//   measured before charge-efficiency losses
// - BatteryDischargeMWh: energy delivered from the battery, measured after
//   discharge-efficiency losses
// - PVProductionMWh: PV output after PV conversion efficiency
// - SOC: state of charge fraction after the interval
type FlowRecord struct {
	Timestamp time.Time `json:"timestamp"`
	PriceMWh  float64   `json:"price_mwh"`

	GridImportMWh       float64 `json:"grid_import_mwh"`
	GridExportMWh       float64 `json:"grid_export_mwh"`
	BatteryChargeMWh    float64 `json:"battery_charge_mwh"`
	BatteryDischargeMWh float64 `json:"battery_discharge_mwh"`
	PVProductionMWh     float64 `json:"pv_production_mwh"`
	PVToBatteryMWh      float64 `json:"pv_to_battery_mwh"`
	PVToGridMWh         float64 `json:"pv_to_grid_mwh"`

	SOC float64 `json:"soc"`
}

// Action classifies the interval by its dominant battery flow.
func (r FlowRecord) Action() Action {
	switch {
	case r.BatteryChargeMWh > 0:
		return ActionCharging
	case r.BatteryDischargeMWh > 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}

// Result is the output of one simulation run: the full trace plus the
// accumulated counters of the battery state the run owned.
type Result struct {
	Records []FlowRecord

	TotalChargeMWh    float64
	TotalDischargeMWh float64
	InitialSOC        float64
	FinalSOC          float64
}
