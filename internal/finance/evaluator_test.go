package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/sim"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func hourlyMarket() model.MarketConfig {
	return model.MarketConfig{
		Region:       model.RegionNSW1,
		Resolution:   time.Hour,
		PriceFloor:   -1000,
		PriceCeiling: 15000,
	}
}

// rec is a shorthand constructor for a grid-side flow record.
func rec(hour int, price, gridIn, gridOut float64) sim.FlowRecord {
	return sim.FlowRecord{
		Timestamp:           t0.Add(time.Duration(hour) * time.Hour),
		PriceMWh:            price,
		GridImportMWh:       gridIn,
		GridExportMWh:       gridOut,
		BatteryChargeMWh:    gridIn,
		BatteryDischargeMWh: gridOut,
	}
}

func TestEvaluate_WorkedExample(t *testing.T) {
	// Full cycle at a constant $50/MWh: 1.8/0.95 MWh charged, 1.71 MWh
	// delivered, so gross profit is negative by exactly the efficiency losses.
	res := &sim.Result{
		Records: []sim.FlowRecord{
			rec(0, 50, 1.0, 0),
			rec(1, 50, 1.8/0.95-1.0, 0),
			rec(2, 50, 0, 1.0),
			rec(3, 50, 0, 1.71-1.0),
		},
		TotalChargeMWh:    1.8 / 0.95,
		TotalDischargeMWh: 1.71,
		FinalSOC:          0.1,
	}
	m := Evaluate(res, model.TariffConfig{NetworkLossFactor: 1}, hourlyMarket())

	assert.InDelta(t, 1.71*50, m.EnergyRevenue, 1e-9)
	assert.InDelta(t, 1.8/0.95*50, m.EnergyCost, 1e-9)
	assert.InDelta(t, 0.9025, m.RoundTripEfficiency, 1e-9)
	assert.InDelta(t, 50, m.AvgPrice, 1e-9)
	assert.InDelta(t, 50, m.ImportWeightedPrice, 1e-9)
	assert.InDelta(t, 50, m.ExportWeightedPrice, 1e-9)
	assert.InDelta(t, 0, m.SpreadCaptured, 1e-9)
	assert.InDelta(t, m.EnergyRevenue-m.EnergyCost, m.GrossProfit, 1e-9)
	assert.Less(t, m.GrossProfit, 0.0)
	assert.Equal(t, 4, m.Intervals)
	assert.InDelta(t, 1.0, m.PeakImportMW, 1e-9)
}

func TestEvaluate_SpreadCaptured(t *testing.T) {
	res := &sim.Result{
		Records: []sim.FlowRecord{
			rec(0, 20, 1.0, 0),
			rec(1, 120, 0, 0.9),
		},
		TotalChargeMWh:    1.0,
		TotalDischargeMWh: 0.9,
	}
	m := Evaluate(res, model.TariffConfig{NetworkLossFactor: 1}, hourlyMarket())

	assert.InDelta(t, 20, m.ImportWeightedPrice, 1e-9)
	assert.InDelta(t, 120, m.ExportWeightedPrice, 1e-9)
	assert.InDelta(t, 100, m.SpreadCaptured, 1e-9)
	assert.InDelta(t, 0.9*120-1.0*20, m.GrossProfit, 1e-9)
}

func TestEvaluate_RoundTripEfficiencyZeroOnNoCharge(t *testing.T) {
	res := &sim.Result{
		Records: []sim.FlowRecord{rec(0, 50, 0, 0)},
	}
	m := Evaluate(res, model.TariffConfig{NetworkLossFactor: 1}, hourlyMarket())
	assert.Zero(t, m.RoundTripEfficiency)
	assert.Zero(t, m.ImportWeightedPrice)
	assert.Zero(t, m.ExportWeightedPrice)
}

func TestEvaluate_NetworkCostUsesLossFactorOnImportsOnly(t *testing.T) {
	tariffs := model.TariffConfig{
		ImportRatePerMWh:  10,
		ExportRatePerMWh:  2,
		NetworkLossFactor: 1.05,
	}
	res := &sim.Result{
		Records: []sim.FlowRecord{
			rec(0, 50, 2.0, 0),
			rec(1, 50, 0, 1.5),
		},
		TotalChargeMWh:    2.0,
		TotalDischargeMWh: 1.5,
	}
	m := Evaluate(res, tariffs, hourlyMarket())

	assert.InDelta(t, 2.0*1.05*10+1.5*2, m.NetworkCost, 1e-9)
}

func TestEvaluate_DemandChargeAppliesOnceToPeak(t *testing.T) {
	tariffs := model.TariffConfig{DemandRatePerMW: 100, NetworkLossFactor: 1}
	res := &sim.Result{
		Records: []sim.FlowRecord{
			rec(0, 50, 0.5, 0),
			rec(1, 50, 2.0, 0), // the peak
			rec(2, 50, 1.0, 0),
		},
		TotalChargeMWh: 3.5,
	}
	m := Evaluate(res, tariffs, hourlyMarket())

	assert.InDelta(t, 2.0, m.PeakImportMW, 1e-9)
	assert.InDelta(t, 200, m.DemandCharge, 1e-9)
}

func TestEvaluate_DemandChargeScalesWithResolution(t *testing.T) {
	// 0.5 MWh over a half-hour interval is a 1 MW draw.
	market := hourlyMarket()
	market.Resolution = 30 * time.Minute
	res := &sim.Result{
		Records:        []sim.FlowRecord{rec(0, 50, 0.5, 0)},
		TotalChargeMWh: 0.5,
	}
	m := Evaluate(res, model.TariffConfig{DemandRatePerMW: 10, NetworkLossFactor: 1}, market)

	assert.InDelta(t, 1.0, m.PeakImportMW, 1e-9)
	assert.InDelta(t, 10, m.DemandCharge, 1e-9)
}

func TestEvaluate_FixedChargeProration(t *testing.T) {
	tariffs := model.TariffConfig{FixedYearly: 8784, NetworkLossFactor: 1} // 2024 is a leap year
	records := make([]sim.FlowRecord, 24)
	for i := range records {
		records[i] = rec(i, 50, 0, 0)
	}
	m := Evaluate(&sim.Result{Records: records}, tariffs, hourlyMarket())

	// one simulated day out of 366: 8784 * 24 / 8784 = 24
	assert.InDelta(t, 24, m.FixedCharge, 1e-9)
}

func TestEvaluate_NetProfitSubtractsAllCharges(t *testing.T) {
	tariffs := model.TariffConfig{
		ImportRatePerMWh:  5,
		ExportRatePerMWh:  1,
		DemandRatePerMW:   50,
		FixedYearly:       1000,
		NetworkLossFactor: 1,
	}
	res := &sim.Result{
		Records: []sim.FlowRecord{
			rec(0, 20, 1.0, 0),
			rec(1, 120, 0, 0.9),
		},
		TotalChargeMWh:    1.0,
		TotalDischargeMWh: 0.9,
	}
	m := Evaluate(res, tariffs, hourlyMarket())

	assert.InDelta(t, m.GrossProfit-m.NetworkCost-m.FixedCharge-m.DemandCharge, m.NetProfit, 1e-9)
	assert.Less(t, m.NetProfit, m.GrossProfit)
}

func TestEvaluate_SolarWeightedPrice(t *testing.T) {
	r := rec(0, 80, 0, 0)
	r.GridExportMWh = 2.0
	r.PVToGridMWh = 2.0
	m := Evaluate(&sim.Result{Records: []sim.FlowRecord{r}},
		model.TariffConfig{NetworkLossFactor: 1}, hourlyMarket())

	assert.InDelta(t, 80, m.SolarWeightedPrice, 1e-9)
	assert.InDelta(t, 2.0, m.TotalPVExportMWh, 1e-9)
}

func TestEvaluate_EmptyResult(t *testing.T) {
	m := Evaluate(&sim.Result{}, model.TariffConfig{NetworkLossFactor: 1}, hourlyMarket())
	assert.Zero(t, m.Intervals)
	assert.Zero(t, m.AvgPrice)
	assert.Zero(t, m.NetProfit)
}

func TestMetrics_Sub(t *testing.T) {
	a := Metrics{EnergyRevenue: 100, NetProfit: 40, Intervals: 24, TotalPVExportMWh: 5}
	b := Metrics{EnergyRevenue: 60, NetProfit: 10, Intervals: 24}
	d := a.Sub(b)

	assert.InDelta(t, 40, d.EnergyRevenue, 1e-9)
	assert.InDelta(t, 30, d.NetProfit, 1e-9)
	assert.Zero(t, d.Intervals)
	assert.InDelta(t, 5, d.TotalPVExportMWh, 1e-9)
}
