package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hybrid-bess-sim/internal/analysis"
	"hybrid-bess-sim/internal/config"
	"hybrid-bess-sim/internal/data"
	"hybrid-bess-sim/internal/finance"
	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/scenario"
	"hybrid-bess-sim/internal/sim"
	"hybrid-bess-sim/internal/timeseries"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "analyze":
		cmdAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --data prices.csv --config config.yaml --out results/ledger.csv")
	fmt.Println("  cli compare  --data prices.csv --config config.yaml")
	fmt.Println("  cli analyze  --data prices.csv --resolution-min 60")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - data files are CSV (timestamp,price_mwh[,solar_mw]) or JSON series exports")
	fmt.Println("  - compare runs both the battery-only and hybrid scenarios and prints the delta")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to price/solar series (CSV or JSON)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	_ = fs.Parse(args)

	cfg := mustConfig(*cfgPath)
	series := mustSeries(*dataPath, cfg.Market.Resolution)

	res, err := scenario.Run(cfg, series)
	if err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fatal(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Records); err != nil {
		fatal(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Records), *outPath)
	printMetrics("result", res.Metrics)
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to price/solar series (CSV or JSON)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "", "Optional directory for both ledgers")
	_ = fs.Parse(args)

	cfg := mustConfig(*cfgPath)
	series := mustSeries(*dataPath, cfg.Market.Resolution)

	comp, err := scenario.Compare(cfg, series)
	if err != nil {
		fatal(err)
	}

	printMetrics("battery-only", comp.BatteryOnly.Metrics)
	printMetrics("hybrid", comp.Hybrid.Metrics)
	printMetrics("delta (hybrid - battery-only)", comp.Delta)

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			fatal(err)
		}
		if err := sim.WriteLedgerCSV(filepath.Join(*outDir, "battery_only.csv"), comp.BatteryOnly.Records); err != nil {
			fatal(err)
		}
		if err := sim.WriteLedgerCSV(filepath.Join(*outDir, "hybrid.csv"), comp.Hybrid.Records); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote ledgers to %s\n", *outDir)
	}
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to price series (CSV or JSON)")
	resolutionMin := fs.Int("resolution-min", 60, "Series resolution in minutes (CSV only)")
	width := fs.Int("window-hours", 4, "Suggested window width in hours")
	_ = fs.Parse(args)

	series := mustSeries(*dataPath, time.Duration(*resolutionMin)*time.Minute)

	stats := analysis.ComputePriceStats(series)
	fmt.Printf("period  %s .. %s (%d intervals)\n",
		stats.Start.Format("2006-01-02 15:04"), stats.End.Format("2006-01-02 15:04"), stats.Count)
	fmt.Printf("price   min=%.2f max=%.2f mean=%.2f p05=%.2f p95=%.2f spread=%.2f\n",
		stats.Min, stats.Max, stats.Mean, stats.P05, stats.P95, stats.SpreadP95P05)

	w := analysis.SuggestWindows(series, *width)
	fmt.Printf("suggest charge [%s, %s) discharge [%s, %s)\n",
		w.ChargeStart, w.ChargeEnd, w.DischargeStart, w.DischargeEnd)
}

func mustConfig(path string) *model.Configuration {
	if path == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

func mustSeries(path string, resolution time.Duration) *timeseries.Series {
	if path == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}
	var (
		series *timeseries.Series
		err    error
	)
	if strings.HasSuffix(path, ".json") {
		series, err = data.LoadSeriesJSON(path)
	} else {
		series, err = data.LoadSeriesCSV(path, resolution)
	}
	if err != nil {
		fatal(err)
	}
	return series
}

func printMetrics(name string, m finance.Metrics) {
	fmt.Printf("--- %s ---\n", name)
	fmt.Printf("  charge=%.2f MWh discharge=%.2f MWh pv_export=%.2f MWh rte=%.4f\n",
		m.TotalChargeMWh, m.TotalDischargeMWh, m.TotalPVExportMWh, m.RoundTripEfficiency)
	fmt.Printf("  avg_price=%.2f import_w=%.2f export_w=%.2f solar_w=%.2f spread=%.2f\n",
		m.AvgPrice, m.ImportWeightedPrice, m.ExportWeightedPrice, m.SolarWeightedPrice, m.SpreadCaptured)
	fmt.Printf("  revenue=%.2f cost=%.2f network=%.2f fixed=%.2f demand=%.2f\n",
		m.EnergyRevenue, m.EnergyCost, m.NetworkCost, m.FixedCharge, m.DemandCharge)
	fmt.Printf("  gross=%.2f net=%.2f final_soc=%.3f intervals=%d\n",
		m.GrossProfit, m.NetProfit, m.FinalSOC, m.Intervals)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
