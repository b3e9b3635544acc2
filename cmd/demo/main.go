package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/scenario"
	"hybrid-bess-sim/internal/sim"
	"hybrid-bess-sim/internal/timeseries"
)

// Demo:
// - Build a synthetic week of prices (daily shape with an evening peak) and a
//   solar bell curve
// - Run the battery-only vs hybrid comparison to show how the pieces fit
func main() {
	days := flag.Int("days", 7, "Number of days to simulate")
	outCSV := flag.String("out", "", "Optional path to write the hybrid ledger CSV")
	flag.Parse()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := *days * 24

	timestamps := make([]time.Time, n)
	prices := make([]float64, n)
	solar := make([]float64, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		timestamps[i] = ts
		h := float64(ts.Hour())
		// Cheap overnight and midday, expensive evening peak.
		prices[i] = 60 + 50*math.Sin((h-9)*math.Pi/12) + 90*peak(h, 18, 2)
		// Solar bell centred on 12:00.
		solar[i] = 5 * peak(h, 12, 3)
	}

	series, err := timeseries.New(timestamps, prices, solar, time.Hour)
	if err != nil {
		panic(err)
	}

	cfg := &model.Configuration{
		Battery: model.BatteryConfig{
			Name:                "demo",
			PowerCapacityMW:     5,
			EnergyCapacityMWh:   20,
			ChargeEfficiency:    0.95,
			DischargeEfficiency: 0.95,
			MinSOC:              0.05,
			MaxSOC:              0.95,
			InitialSOC:          0.05,
		},
		PV: model.PVConfig{
			CapacityMW:            5,
			Efficiency:            0.95,
			ExportEfficiency:      0.98,
			BidirectionalCharging: true,
		},
		Market: model.MarketConfig{
			Region:       model.RegionNSW1,
			Start:        start,
			End:          start.Add(time.Duration(n-1) * time.Hour),
			Resolution:   time.Hour,
			PriceFloor:   -1000,
			PriceCeiling: 15000,
		},
		Windows: model.DispatchWindowsConfig{
			Charge:    model.Window{Start: "10:00", End: "15:00"},
			Discharge: model.Window{Start: "17:00", End: "21:00"},
		},
		Tariffs: model.TariffConfig{
			FixedYearly:       5000,
			ImportRatePerMWh:  12,
			ExportRatePerMWh:  3,
			DemandRatePerMW:   0,
			NetworkLossFactor: 1,
		},
	}

	comp, err := scenario.Compare(cfg, series)
	if err != nil {
		panic(err)
	}

	fmt.Printf("battery-only: net=%.2f gross=%.2f rte=%.4f\n",
		comp.BatteryOnly.Metrics.NetProfit, comp.BatteryOnly.Metrics.GrossProfit,
		comp.BatteryOnly.Metrics.RoundTripEfficiency)
	fmt.Printf("hybrid:       net=%.2f gross=%.2f pv_export=%.2f MWh\n",
		comp.Hybrid.Metrics.NetProfit, comp.Hybrid.Metrics.GrossProfit,
		comp.Hybrid.Metrics.TotalPVExportMWh)
	fmt.Printf("delta:        net=%+.2f revenue=%+.2f cost=%+.2f\n",
		comp.Delta.NetProfit, comp.Delta.EnergyRevenue, comp.Delta.EnergyCost)

	if *outCSV != "" {
		if err := sim.WriteLedgerCSV(*outCSV, comp.Hybrid.Records); err != nil {
			panic(err)
		}
		fmt.Printf("wrote hybrid ledger to %s\n", *outCSV)
	}
}

// peak is a gaussian bump centred on c with width w, evaluated at hour h.
func peak(h, c, w float64) float64 {
	d := h - c
	return math.Exp(-d * d / (2 * w * w))
}
