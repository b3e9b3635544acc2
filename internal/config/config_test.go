package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-bess-sim/internal/model"
)

const sampleYAML = `
battery:
  name: test-battery
  power_capacity_mw: 5
  energy_capacity_mwh: 20
  charge_efficiency: 0.95
  discharge_efficiency: 0.95
  min_soc: 0.1
  max_soc: 0.9
pv:
  capacity_mw: 3
  efficiency: 0.97
  export_efficiency: 0.98
  bidirectional_charging: true
market:
  region: NSW1
  start: 2024-03-01
  end: 2024-03-07
  resolution_min: 30
  price_floor: -500
  price_ceiling: 10000
windows:
  charge_start: "00:00"
  charge_end: "06:00"
  discharge_start: "17:00"
  discharge_end: "21:00"
tariffs:
  fixed_yearly: 12000
  import_rate_per_mwh: 8.5
  export_rate_per_mwh: 1.2
  demand_rate_per_mw: 150
  network_loss_factor: 1.05
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "test-battery", cfg.Battery.Name)
	assert.Equal(t, 5.0, cfg.Battery.PowerCapacityMW)
	assert.Equal(t, 20.0, cfg.Battery.EnergyCapacityMWh)
	assert.Equal(t, 0.1, cfg.Battery.InitialSOC, "initial SOC defaults to min SOC")

	assert.True(t, cfg.PV.Enabled())
	assert.True(t, cfg.PV.BidirectionalCharging)

	assert.Equal(t, model.RegionNSW1, cfg.Market.Region)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), cfg.Market.Start)
	assert.Equal(t, 30*time.Minute, cfg.Market.Resolution)
	assert.Equal(t, -500.0, cfg.Market.PriceFloor)

	assert.Equal(t, "17:00", cfg.Windows.Discharge.Start)
	assert.Equal(t, 1.05, cfg.Tariffs.NetworkLossFactor)
}

func TestLoad_Defaults(t *testing.T) {
	minimal := `
battery:
  power_capacity_mw: 1
  energy_capacity_mwh: 2
  charge_efficiency: 0.9
  discharge_efficiency: 0.9
  min_soc: 0.05
  max_soc: 0.95
market:
  region: SA1
  start: 2024-01-01
  end: 2024-01-02
windows:
  charge_start: "01:00"
  charge_end: "05:00"
  discharge_start: "18:00"
  discharge_end: "21:00"
`
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Market.Resolution)
	assert.Equal(t, -1000.0, cfg.Market.PriceFloor)
	assert.Equal(t, 15000.0, cfg.Market.PriceCeiling)
	assert.Equal(t, 1.0, cfg.Tariffs.NetworkLossFactor)
	assert.Equal(t, 0.05, cfg.Battery.InitialSOC)
	assert.False(t, cfg.PV.Enabled())
}

func TestLoad_EndDateCoversFullDay(t *testing.T) {
	oneDay := `
battery:
  power_capacity_mw: 1
  energy_capacity_mwh: 2
  charge_efficiency: 0.9
  discharge_efficiency: 0.9
  min_soc: 0.05
  max_soc: 0.95
market:
  region: NSW1
  start: 2024-01-01
  end: 2024-01-01
  resolution_min: 30
windows:
  charge_start: "01:00"
  charge_end: "05:00"
  discharge_start: "18:00"
  discharge_end: "21:00"
`
	cfg, err := Load(writeConfig(t, oneDay))
	require.NoError(t, err)

	// start == end covers every interval of that day
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Market.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), cfg.Market.End)
}

func TestLoad_EndDateInclusiveMultiDay(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	// end 2024-03-07 at 30-minute resolution runs through 23:30 of that day
	assert.Equal(t, time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC), cfg.Market.End)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	bad := `
battery:
  power_capacity_mw: -1
  energy_capacity_mwh: 2
  charge_efficiency: 0.9
  discharge_efficiency: 0.9
  min_soc: 0.1
  max_soc: 0.9
market:
  region: NSW1
  start: 2024-01-01
  end: 2024-01-02
windows:
  charge_start: "01:00"
  charge_end: "05:00"
  discharge_start: "18:00"
  discharge_end: "21:00"
`
	_, err := Load(writeConfig(t, bad))
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "battery.power_capacity_mw", cfgErr.Param)
}

func TestLoad_BadDate(t *testing.T) {
	bad := `
battery:
  power_capacity_mw: 1
  energy_capacity_mwh: 2
  charge_efficiency: 0.9
  discharge_efficiency: 0.9
  min_soc: 0.1
  max_soc: 0.9
market:
  region: NSW1
  start: not-a-date
  end: 2024-01-02
`
	_, err := Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market.start")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "battery: ["))
	require.Error(t, err)
}
