package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteLedgerCSV writes the per-interval flow records to a CSV file.
// This is the primary artifact for inspecting "what happened" in a run.
func WriteLedgerCSV(path string, records []FlowRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"timestamp",
		"price_mwh",
		"action",
		"grid_import_mwh",
		"grid_export_mwh",
		"battery_charge_mwh",
		"battery_discharge_mwh",
		"pv_production_mwh",
		"pv_to_battery_mwh",
		"pv_to_grid_mwh",
		"soc",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			fmtFloat(r.PriceMWh),
			string(r.Action()),
			fmtFloat(r.GridImportMWh),
			fmtFloat(r.GridExportMWh),
			fmtFloat(r.BatteryChargeMWh),
			fmtFloat(r.BatteryDischargeMWh),
			fmtFloat(r.PVProductionMWh),
			fmtFloat(r.PVToBatteryMWh),
			fmtFloat(r.PVToGridMWh),
			fmtFloat(r.SOC),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
