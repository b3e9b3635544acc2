package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedgerCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	records := []FlowRecord{
		{
			Timestamp:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PriceMWh:         42.5,
			GridImportMWh:    1,
			BatteryChargeMWh: 1,
			SOC:              0.575,
		},
		{
			Timestamp:           time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			PriceMWh:            120,
			GridExportMWh:       0.9,
			BatteryDischargeMWh: 0.9,
			SOC:                 0.1,
		},
	}
	require.NoError(t, WriteLedgerCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "soc", rows[0][len(rows[0])-1])
	assert.Equal(t, "2024-01-01T00:00:00Z", rows[1][0])
	assert.Equal(t, string(ActionCharging), rows[1][2])
	assert.Equal(t, string(ActionDischarging), rows[2][2])
	assert.Equal(t, "0.575000", rows[1][len(rows[1])-1])
}
