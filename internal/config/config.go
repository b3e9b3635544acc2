// Package config loads simulation configuration from YAML files and maps it
// onto the validated model types.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hybrid-bess-sim/internal/model"
)

// Config is the on-disk configuration shape (YAML). Dates are "YYYY-MM-DD"
// and both bounds are inclusive; times of day are "HH:MM"; the resolution is
// minutes.
type Config struct {
	Battery BatteryConfig `yaml:"battery" json:"battery"`
	PV      PVConfig      `yaml:"pv" json:"pv"`
	Market  MarketConfig  `yaml:"market" json:"market"`
	Windows WindowsConfig `yaml:"windows" json:"windows"`
	Tariffs TariffsConfig `yaml:"tariffs" json:"tariffs"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name" json:"name"`
	PowerCapacityMW     float64 `yaml:"power_capacity_mw" json:"power_capacity_mw"`
	EnergyCapacityMWh   float64 `yaml:"energy_capacity_mwh" json:"energy_capacity_mwh"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency" json:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency" json:"discharge_efficiency"`
	MinSOC              float64 `yaml:"min_soc" json:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc" json:"max_soc"`
	InitialSOC          float64 `yaml:"initial_soc" json:"initial_soc"`
}

type PVConfig struct {
	CapacityMW            float64 `yaml:"capacity_mw" json:"capacity_mw"`
	Efficiency            float64 `yaml:"efficiency" json:"efficiency"`
	ExportEfficiency      float64 `yaml:"export_efficiency" json:"export_efficiency"`
	BidirectionalCharging bool    `yaml:"bidirectional_charging" json:"bidirectional_charging"`
}

type MarketConfig struct {
	Region        string  `yaml:"region" json:"region"`
	Start         string  `yaml:"start" json:"start"` // YYYY-MM-DD
	End           string  `yaml:"end" json:"end"`   // YYYY-MM-DD
	ResolutionMin int     `yaml:"resolution_min" json:"resolution_min"`
	PriceFloor    float64 `yaml:"price_floor" json:"price_floor"`
	PriceCeiling  float64 `yaml:"price_ceiling" json:"price_ceiling"`
}

type WindowsConfig struct {
	ChargeStart    string `yaml:"charge_start" json:"charge_start"`
	ChargeEnd      string `yaml:"charge_end" json:"charge_end"`
	DischargeStart string `yaml:"discharge_start" json:"discharge_start"`
	DischargeEnd   string `yaml:"discharge_end" json:"discharge_end"`
}

type TariffsConfig struct {
	FixedYearly       float64 `yaml:"fixed_yearly" json:"fixed_yearly"`
	ImportRatePerMWh  float64 `yaml:"import_rate_per_mwh" json:"import_rate_per_mwh"`
	ExportRatePerMWh  float64 `yaml:"export_rate_per_mwh" json:"export_rate_per_mwh"`
	DemandRatePerMW   float64 `yaml:"demand_rate_per_mw" json:"demand_rate_per_mw"`
	NetworkLossFactor float64 `yaml:"network_loss_factor" json:"network_loss_factor"`
}

// Load reads a YAML config, applies defaults, and returns a validated model
// Configuration.
func Load(path string) (*model.Configuration, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	cfg, err := c.ToModel()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnchecked loads the raw config with defaults applied, but performs no
// mapping or validation. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// ApplyDefaults fills in conventional values for omitted fields.
func (c *Config) ApplyDefaults() {
	if c.Battery.InitialSOC == 0 {
		c.Battery.InitialSOC = c.Battery.MinSOC
	}
	if c.Market.ResolutionMin == 0 {
		c.Market.ResolutionMin = 60
	}
	if c.Market.PriceFloor == 0 && c.Market.PriceCeiling == 0 {
		// NEM market price floor and cap.
		c.Market.PriceFloor = -1000
		c.Market.PriceCeiling = 15000
	}
	if c.Tariffs.NetworkLossFactor == 0 {
		c.Tariffs.NetworkLossFactor = 1
	}
}

// ToModel maps the on-disk shape onto the model types. Date parsing errors
// surface here; constraint violations surface from Configuration.Validate.
func (c *Config) ToModel() (*model.Configuration, error) {
	start, err := time.Parse("2006-01-02", c.Market.Start)
	if err != nil {
		return nil, fmt.Errorf("market.start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Market.End)
	if err != nil {
		return nil, fmt.Errorf("market.end: %w", err)
	}

	resolution := time.Duration(c.Market.ResolutionMin) * time.Minute
	// The end date is inclusive: extend it to the start of its last interval,
	// so start == end simulates the whole day.
	if resolution > 0 {
		end = end.Add(24*time.Hour - resolution)
	}

	return &model.Configuration{
		Battery: model.BatteryConfig{
			Name:                c.Battery.Name,
			PowerCapacityMW:     c.Battery.PowerCapacityMW,
			EnergyCapacityMWh:   c.Battery.EnergyCapacityMWh,
			ChargeEfficiency:    c.Battery.ChargeEfficiency,
			DischargeEfficiency: c.Battery.DischargeEfficiency,
			MinSOC:              c.Battery.MinSOC,
			MaxSOC:              c.Battery.MaxSOC,
			InitialSOC:          c.Battery.InitialSOC,
		},
		PV: model.PVConfig{
			CapacityMW:            c.PV.CapacityMW,
			Efficiency:            c.PV.Efficiency,
			ExportEfficiency:      c.PV.ExportEfficiency,
			BidirectionalCharging: c.PV.BidirectionalCharging,
		},
		Market: model.MarketConfig{
			Region:       model.Region(c.Market.Region),
			Start:        start,
			End:          end,
			Resolution:   resolution,
			PriceFloor:   c.Market.PriceFloor,
			PriceCeiling: c.Market.PriceCeiling,
		},
		Windows: model.DispatchWindowsConfig{
			Charge:    model.Window{Start: c.Windows.ChargeStart, End: c.Windows.ChargeEnd},
			Discharge: model.Window{Start: c.Windows.DischargeStart, End: c.Windows.DischargeEnd},
		},
		Tariffs: model.TariffConfig{
			FixedYearly:       c.Tariffs.FixedYearly,
			ImportRatePerMWh:  c.Tariffs.ImportRatePerMWh,
			ExportRatePerMWh:  c.Tariffs.ExportRatePerMWh,
			DemandRatePerMW:   c.Tariffs.DemandRatePerMW,
			NetworkLossFactor: c.Tariffs.NetworkLossFactor,
		},
	}, nil
}
