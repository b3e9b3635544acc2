// Package finance turns a simulation trace into revenue, cost and
// profitability metrics. Evaluation is a pure function over its inputs;
// nothing is shared between calls.
package finance

import (
	"time"

	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/sim"
)

// Metrics are the aggregated financial and operational outputs of one run.
// Prices are currency per MWh; monetary fields are plain currency.
type Metrics struct {
	TotalChargeMWh    float64 `json:"total_charge_mwh"`
	TotalDischargeMWh float64 `json:"total_discharge_mwh"`
	TotalPVExportMWh  float64 `json:"total_pv_export_mwh"`

	// RoundTripEfficiency is delivered over consumed battery energy.
	// Reported as zero, not a division fault, when nothing was charged.
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`

	AvgPrice            float64 `json:"avg_price"`             // time-weighted
	ImportWeightedPrice float64 `json:"import_weighted_price"` // flow-weighted over grid imports
	ExportWeightedPrice float64 `json:"export_weighted_price"` // flow-weighted over battery discharge
	SolarWeightedPrice  float64 `json:"solar_weighted_price"`  // flow-weighted over PV exports
	SpreadCaptured      float64 `json:"spread_captured"`

	EnergyRevenue float64 `json:"energy_revenue"`
	EnergyCost    float64 `json:"energy_cost"`
	NetworkCost   float64 `json:"network_cost"`
	FixedCharge   float64 `json:"fixed_charge"`
	DemandCharge  float64 `json:"demand_charge"`
	GrossProfit   float64 `json:"gross_profit"`
	NetProfit     float64 `json:"net_profit"`

	PeakImportMW float64 `json:"peak_import_mw"`
	Intervals    int     `json:"intervals"`
	FinalSOC     float64 `json:"final_soc"`
}

// Evaluate computes the aggregated metrics for one run. The simulated period
// is treated as a single billing period: the demand charge applies once to the
// peak import, and the fixed yearly charge is prorated by the period length
// relative to the start year.
func Evaluate(res *sim.Result, tariffs model.TariffConfig, market model.MarketConfig) Metrics {
	m := Metrics{
		TotalChargeMWh:    res.TotalChargeMWh,
		TotalDischargeMWh: res.TotalDischargeMWh,
		Intervals:         len(res.Records),
		FinalSOC:          res.FinalSOC,
	}
	if len(res.Records) == 0 {
		return m
	}

	dtH := market.Resolution.Hours()

	var priceSum float64
	var importCostW, importW float64
	var exportRevW, exportW float64
	var solarRevW, solarW float64

	for _, r := range res.Records {
		m.EnergyRevenue += r.GridExportMWh * r.PriceMWh
		m.EnergyCost += r.GridImportMWh * r.PriceMWh
		m.NetworkCost += r.GridImportMWh*tariffs.NetworkLossFactor*tariffs.ImportRatePerMWh +
			r.GridExportMWh*tariffs.ExportRatePerMWh

		if imp := r.GridImportMWh / dtH; imp > m.PeakImportMW {
			m.PeakImportMW = imp
		}

		priceSum += r.PriceMWh
		importCostW += r.GridImportMWh * r.PriceMWh
		importW += r.GridImportMWh
		exportRevW += r.BatteryDischargeMWh * r.PriceMWh
		exportW += r.BatteryDischargeMWh
		solarRevW += r.PVToGridMWh * r.PriceMWh
		solarW += r.PVToGridMWh

		m.TotalPVExportMWh += r.PVToGridMWh
	}

	if m.TotalChargeMWh > 0 {
		m.RoundTripEfficiency = m.TotalDischargeMWh / m.TotalChargeMWh
	}
	m.AvgPrice = priceSum / float64(len(res.Records))
	if importW > 0 {
		m.ImportWeightedPrice = importCostW / importW
	}
	if exportW > 0 {
		m.ExportWeightedPrice = exportRevW / exportW
	}
	if solarW > 0 {
		m.SolarWeightedPrice = solarRevW / solarW
	}
	m.SpreadCaptured = m.ExportWeightedPrice - m.ImportWeightedPrice

	m.DemandCharge = m.PeakImportMW * tariffs.DemandRatePerMW
	m.FixedCharge = prorateYearly(tariffs.FixedYearly, res.Records[0].Timestamp, float64(len(res.Records))*dtH)

	m.GrossProfit = m.EnergyRevenue - m.EnergyCost
	m.NetProfit = m.GrossProfit - m.NetworkCost - m.FixedCharge - m.DemandCharge
	return m
}

// prorateYearly scales a yearly charge by the simulated hours over the hours
// in the start year (365 or 366 days).
func prorateYearly(yearly float64, start time.Time, simulatedHours float64) float64 {
	yearStart := time.Date(start.Year(), 1, 1, 0, 0, 0, 0, start.Location())
	yearEnd := time.Date(start.Year()+1, 1, 1, 0, 0, 0, 0, start.Location())
	yearHours := yearEnd.Sub(yearStart).Hours()
	return yearly * simulatedHours / yearHours
}

// Sub returns the field-wise difference m − other. The Scenario Comparator
// uses it to report hybrid − batteryOnly deltas.
func (m Metrics) Sub(other Metrics) Metrics {
	return Metrics{
		TotalChargeMWh:      m.TotalChargeMWh - other.TotalChargeMWh,
		TotalDischargeMWh:   m.TotalDischargeMWh - other.TotalDischargeMWh,
		TotalPVExportMWh:    m.TotalPVExportMWh - other.TotalPVExportMWh,
		RoundTripEfficiency: m.RoundTripEfficiency - other.RoundTripEfficiency,
		AvgPrice:            m.AvgPrice - other.AvgPrice,
		ImportWeightedPrice: m.ImportWeightedPrice - other.ImportWeightedPrice,
		ExportWeightedPrice: m.ExportWeightedPrice - other.ExportWeightedPrice,
		SolarWeightedPrice:  m.SolarWeightedPrice - other.SolarWeightedPrice,
		SpreadCaptured:      m.SpreadCaptured - other.SpreadCaptured,
		EnergyRevenue:       m.EnergyRevenue - other.EnergyRevenue,
		EnergyCost:          m.EnergyCost - other.EnergyCost,
		NetworkCost:         m.NetworkCost - other.NetworkCost,
		FixedCharge:         m.FixedCharge - other.FixedCharge,
		DemandCharge:        m.DemandCharge - other.DemandCharge,
		GrossProfit:         m.GrossProfit - other.GrossProfit,
		NetProfit:           m.NetProfit - other.NetProfit,
		PeakImportMW:        m.PeakImportMW - other.PeakImportMW,
		Intervals:           m.Intervals - other.Intervals,
		FinalSOC:            m.FinalSOC - other.FinalSOC,
	}
}
