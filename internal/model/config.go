package model

import (
	"time"
)

// Region is a NEM price region.
type Region string

const (
	RegionNSW1 Region = "NSW1"
	RegionQLD1 Region = "QLD1"
	RegionSA1  Region = "SA1"
	RegionVIC1 Region = "VIC1"
)

// Regions lists the supported price regions in a stable order.
func Regions() []Region {
	return []Region{RegionNSW1, RegionQLD1, RegionSA1, RegionVIC1}
}

func validRegion(r Region) bool {
	for _, v := range Regions() {
		if r == v {
			return true
		}
	}
	return false
}

// BatteryConfig defines the physical parameters of the battery.
// Units:
// - EnergyCapacityMWh: MWh
// - PowerCapacityMW: MW
// - Efficiencies: 0..1
// - SOC bounds and InitialSOC: fraction of EnergyCapacityMWh
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	PowerCapacityMW     float64 `json:"power_capacity_mw"`
	EnergyCapacityMWh   float64 `json:"energy_capacity_mwh"`
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
	MinSOC              float64 `json:"min_soc"`
	MaxSOC              float64 `json:"max_soc"`
	InitialSOC          float64 `json:"initial_soc"`
}

// PVConfig defines the co-located solar array. A zero CapacityMW disables PV.
// BidirectionalCharging allows PV to charge the battery outside the configured
// charge window; grid charging is always confined to the charge window.
type PVConfig struct {
	CapacityMW            float64 `json:"capacity_mw"`
	Efficiency            float64 `json:"efficiency"`
	ExportEfficiency      float64 `json:"export_efficiency"`
	BidirectionalCharging bool    `json:"bidirectional_charging"`
}

// Enabled reports whether a PV array is configured at all.
func (p PVConfig) Enabled() bool { return p.CapacityMW > 0 }

// MarketConfig selects the price region, date range and resolution, and the
// floor/ceiling that raw prices are clamped to before any accounting.
type MarketConfig struct {
	Region       Region        `json:"region"`
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Resolution   time.Duration `json:"resolution"`
	PriceFloor   float64       `json:"price_floor"`
	PriceCeiling float64       `json:"price_ceiling"`
}

// ClampPrice applies the configured floor and ceiling to a raw price.
func (m MarketConfig) ClampPrice(p float64) float64 {
	if p < m.PriceFloor {
		return m.PriceFloor
	}
	if p > m.PriceCeiling {
		return m.PriceCeiling
	}
	return p
}

// DispatchWindowsConfig holds the daily charge and discharge windows.
// The two windows must not overlap.
type DispatchWindowsConfig struct {
	Charge    Window `json:"charge"`
	Discharge Window `json:"discharge"`
}

// TariffConfig holds the network tariff components.
// - FixedYearly: billed per year, prorated over the simulated period
// - Import/Export volumetric rates: per MWh
// - DemandRate: per peak MW of import over the billing period
// - NetworkLossFactor: scales metered import volume, typically close to 1
type TariffConfig struct {
	FixedYearly       float64 `json:"fixed_yearly"`
	ImportRatePerMWh  float64 `json:"import_rate_per_mwh"`
	ExportRatePerMWh  float64 `json:"export_rate_per_mwh"`
	DemandRatePerMW   float64 `json:"demand_rate_per_mw"`
	NetworkLossFactor float64 `json:"network_loss_factor"`
}

// Configuration bundles everything a simulation run needs. It is validated as
// a unit before any run; an invalid Configuration never reaches the engine.
type Configuration struct {
	Battery BatteryConfig         `json:"battery"`
	PV      PVConfig              `json:"pv"`
	Market  MarketConfig          `json:"market"`
	Windows DispatchWindowsConfig `json:"windows"`
	Tariffs TariffConfig          `json:"tariffs"`
}

// Validate checks every field constraint. It is pure: it never touches
// time-series data and has no side effects.
func (c *Configuration) Validate() error {
	b := c.Battery
	if b.PowerCapacityMW <= 0 {
		return configErr("battery.power_capacity_mw", b.PowerCapacityMW, "must be > 0")
	}
	if b.EnergyCapacityMWh < 0 {
		return configErr("battery.energy_capacity_mwh", b.EnergyCapacityMWh, "must be >= 0")
	}
	if b.ChargeEfficiency <= 0 || b.ChargeEfficiency > 1 {
		return configErr("battery.charge_efficiency", b.ChargeEfficiency, "must be in (0, 1]")
	}
	if b.DischargeEfficiency <= 0 || b.DischargeEfficiency > 1 {
		return configErr("battery.discharge_efficiency", b.DischargeEfficiency, "must be in (0, 1]")
	}
	if b.MinSOC < 0 || b.MaxSOC > 1 || b.MinSOC >= b.MaxSOC {
		return configErr("battery.min_soc/max_soc", [2]float64{b.MinSOC, b.MaxSOC}, "must satisfy 0 <= min < max <= 1")
	}
	if b.InitialSOC < b.MinSOC || b.InitialSOC > b.MaxSOC {
		return configErr("battery.initial_soc", b.InitialSOC, "must be within [min_soc, max_soc]")
	}

	p := c.PV
	if p.CapacityMW < 0 {
		return configErr("pv.capacity_mw", p.CapacityMW, "must be >= 0")
	}
	if p.Enabled() {
		if p.Efficiency <= 0 || p.Efficiency > 1 {
			return configErr("pv.efficiency", p.Efficiency, "must be in (0, 1]")
		}
		if p.ExportEfficiency <= 0 || p.ExportEfficiency > 1 {
			return configErr("pv.export_efficiency", p.ExportEfficiency, "must be in (0, 1]")
		}
	}

	m := c.Market
	if !validRegion(m.Region) {
		return configErr("market.region", m.Region, "must be one of NSW1/QLD1/SA1/VIC1")
	}
	if m.Start.After(m.End) {
		return configErr("market.start", m.Start, "must not be after market.end")
	}
	if m.Resolution <= 0 {
		return configErr("market.resolution", m.Resolution, "must be > 0")
	}
	if m.PriceFloor > m.PriceCeiling {
		return configErr("market.price_floor", m.PriceFloor, "must not exceed price_ceiling")
	}

	if err := c.Windows.Charge.validate("windows.charge"); err != nil {
		return err
	}
	if err := c.Windows.Discharge.validate("windows.discharge"); err != nil {
		return err
	}
	if c.Windows.Charge.Overlaps(c.Windows.Discharge) {
		return configErr("windows", c.Windows, "charge and discharge windows must not overlap")
	}

	t := c.Tariffs
	if t.FixedYearly < 0 {
		return configErr("tariffs.fixed_yearly", t.FixedYearly, "must be >= 0")
	}
	if t.ImportRatePerMWh < 0 {
		return configErr("tariffs.import_rate_per_mwh", t.ImportRatePerMWh, "must be >= 0")
	}
	if t.ExportRatePerMWh < 0 {
		return configErr("tariffs.export_rate_per_mwh", t.ExportRatePerMWh, "must be >= 0")
	}
	if t.DemandRatePerMW < 0 {
		return configErr("tariffs.demand_rate_per_mw", t.DemandRatePerMW, "must be >= 0")
	}
	if t.NetworkLossFactor <= 0 {
		return configErr("tariffs.network_loss_factor", t.NetworkLossFactor, "must be > 0")
	}
	return nil
}

// Derived quantities used repeatedly by the engine.

// IntervalHours is the configured resolution expressed in hours.
func (c *Configuration) IntervalHours() float64 {
	return c.Market.Resolution.Hours()
}

// UsableEnergyMWh is the energy band between min and max SOC.
func (c *Configuration) UsableEnergyMWh() float64 {
	return (c.Battery.MaxSOC - c.Battery.MinSOC) * c.Battery.EnergyCapacityMWh
}

// MaxIntervalEnergyMWh is the most grid-side energy the battery can move in a
// single interval, limited by power capacity alone.
func (c *Configuration) MaxIntervalEnergyMWh() float64 {
	return c.Battery.PowerCapacityMW * c.IntervalHours()
}
