// Package sim is the dispatch simulation engine. It advances battery state one
// interval at a time, applying window rules, power and energy limits, and
// efficiency losses, and emits a per-interval FlowRecord.
package sim

import (
	"fmt"
	"math"

	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/timeseries"
)

// socTolerance absorbs floating-point drift on the SOC bounds. Anything
// beyond it is a logic fault and surfaces as an InvariantError.
const socTolerance = 1e-9

// batteryState is mutable state owned exclusively by one run.
type batteryState struct {
	soc           float64 // fraction
	chargedMWh    float64 // cumulative grid-side energy into the battery path
	dischargedMWh float64 // cumulative grid-side energy delivered
}

// Simulate runs the dispatch loop over the configured date range.
// Deterministic: identical inputs always produce an identical record sequence.
// The solar column of the series is only consulted when the configuration has
// PV capacity; the battery-only scenario passes a series without solar.
func Simulate(cfg *model.Configuration, series *timeseries.Series) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if series.Resolution() != cfg.Market.Resolution {
		return nil, fmt.Errorf("series resolution %s does not match configured resolution %s",
			series.Resolution(), cfg.Market.Resolution)
	}
	run, err := series.Range(cfg.Market.Start, cfg.Market.End)
	if err != nil {
		return nil, err
	}
	// PV contributes only when both configured and a solar column is present;
	// the battery-only scenario passes a series with the column suppressed.
	usePV := cfg.PV.Enabled() && run.HasSolar()

	b := cfg.Battery
	dtH := cfg.IntervalHours()
	maxIntervalMWh := cfg.MaxIntervalEnergyMWh()
	hasBattery := b.EnergyCapacityMWh > 0

	state := batteryState{soc: b.InitialSOC}
	records := make([]FlowRecord, 0, run.Len())

	for _, pt := range run.Points() {
		price := cfg.Market.ClampPrice(pt.PriceMWh)

		// PV production for the interval, after PV conversion efficiency.
		pvProdMWh := 0.0
		if usePV {
			pvProdMWh = math.Min(cfg.PV.CapacityMW, pt.SolarMW) * cfg.PV.Efficiency * dtH
			if pvProdMWh < 0 {
				pvProdMWh = 0
			}
		}

		inCharge := cfg.Windows.Charge.Contains(pt.Timestamp)
		inDischarge := cfg.Windows.Discharge.Contains(pt.Timestamp)

		// PV allocation. PV charging takes priority over grid charging and
		// shares the single battery power limit for the interval.
		headroomStoredMWh := (b.MaxSOC - state.soc) * b.EnergyCapacityMWh
		pvToBattMWh := 0.0
		if hasBattery && pvProdMWh > 0 && (inCharge || cfg.PV.BidirectionalCharging) {
			pvToBattMWh = math.Min(pvProdMWh, math.Min(maxIntervalMWh, headroomStoredMWh/b.ChargeEfficiency))
			if pvToBattMWh < 0 {
				pvToBattMWh = 0
			}
		}
		pvToGridMWh := (pvProdMWh - pvToBattMWh) * cfg.PV.ExportEfficiency

		// Grid-side battery action.
		gridChargeMWh := 0.0
		dischargeMWh := 0.0
		if hasBattery {
			if inCharge {
				powerBudgetMWh := maxIntervalMWh - pvToBattMWh
				remainingHeadroomMWh := headroomStoredMWh - pvToBattMWh*b.ChargeEfficiency
				gridChargeMWh = math.Min(powerBudgetMWh, remainingHeadroomMWh/b.ChargeEfficiency)
				if gridChargeMWh < 0 {
					gridChargeMWh = 0
				}
			} else if inDischarge {
				withdrawableMWh := (state.soc - b.MinSOC) * b.EnergyCapacityMWh
				dischargeMWh = math.Min(maxIntervalMWh, withdrawableMWh*b.DischargeEfficiency)
				if dischargeMWh < 0 {
					dischargeMWh = 0
				}
			}
		}

		chargeInMWh := pvToBattMWh + gridChargeMWh

		// SOC update. The clamp is defensive only: steps above already
		// respected headroom, so a violation beyond tolerance is a fault.
		newSOC := state.soc
		if hasBattery {
			deltaMWh := chargeInMWh*b.ChargeEfficiency - dischargeMWh/b.DischargeEfficiency
			newSOC = state.soc + deltaMWh/b.EnergyCapacityMWh
			if newSOC < b.MinSOC-socTolerance || newSOC > b.MaxSOC+socTolerance {
				return nil, &model.InvariantError{
					Timestamp: pt.Timestamp,
					Detail:    fmt.Sprintf("SOC %.12f outside [%.4f, %.4f]", newSOC, b.MinSOC, b.MaxSOC),
				}
			}
			if newSOC < b.MinSOC {
				newSOC = b.MinSOC
			}
			if newSOC > b.MaxSOC {
				newSOC = b.MaxSOC
			}
		}

		state.soc = newSOC
		state.chargedMWh += chargeInMWh
		state.dischargedMWh += dischargeMWh

		records = append(records, FlowRecord{
			Timestamp:           pt.Timestamp,
			PriceMWh:            price,
			GridImportMWh:       gridChargeMWh,
			GridExportMWh:       dischargeMWh + pvToGridMWh,
			BatteryChargeMWh:    chargeInMWh,
			BatteryDischargeMWh: dischargeMWh,
			PVProductionMWh:     pvProdMWh,
			PVToBatteryMWh:      pvToBattMWh,
			PVToGridMWh:         pvToGridMWh,
			SOC:                 state.soc,
		})
	}

	return &Result{
		Records:           records,
		TotalChargeMWh:    state.chargedMWh,
		TotalDischargeMWh: state.dischargedMWh,
		InitialSOC:        b.InitialSOC,
		FinalSOC:          state.soc,
	}, nil
}
