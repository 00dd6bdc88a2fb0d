// Package rules holds the static operating thresholds for the
// transmission site and the pure evaluation logic built on them:
// parameter classification, VSWR derivation and the daily checklist
// guidance table.
package rules

import (
	"fmt"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// Monitored parameter names. Each keys a range list in the threshold
// table. The voltage table is shared by all three phases.
const (
	ParamPowerOutput = "Power Output (W)"
	ParamVSWR        = "VSWR"
	ParamCN          = "C/N (dB)"
	ParamMargin      = "Margin (dB)"
	ParamVoltage     = "Voltage (V)"
	ParamTemperature = "TX Temperature (°C)"
)

// Parameters lists the monitored parameters in display order.
var Parameters = []string{
	ParamPowerOutput,
	ParamVSWR,
	ParamCN,
	ParamMargin,
	ParamVoltage,
	ParamTemperature,
}

// Range is one classification band. Both bounds are inclusive.
type Range struct {
	Min    float64
	Max    float64
	Tier   models.Tier
	Advice string
}

// Table maps a parameter name to its ordered range list. Declaration
// order is load-bearing: when ranges overlap, the earlier one wins.
type Table map[string][]Range

// DefaultTable carries the site's fixed operating thresholds.
var DefaultTable = Table{
	ParamPowerOutput: {
		{Min: 10000, Max: 11900, Tier: models.TierNormal, Advice: "Output power within standard"},
		{Min: 8000, Max: 9999, Tier: models.TierWarning, Advice: "Log the drop, check transmitter load"},
		{Min: 0, Max: 7999, Tier: models.TierTrouble, Advice: "On power drop: inspect exciter, amplifier and RF cabling"},
		{Min: 11901, Max: 20000, Tier: models.TierTrouble, Advice: "On over-power: check settings and recalibrate output power"},
	},
	ParamVSWR: {
		{Min: 0, Max: 1.24, Tier: models.TierNormal, Advice: "VSWR is safe"},
		{Min: 1.25, Max: 1.30, Tier: models.TierWarning, Advice: "Tighten connectors, check feeder and antenna condition"},
		{Min: 1.31, Max: 10.0, Tier: models.TierTrouble, Advice: "Reduce power immediately, inspect antenna and feeder"},
	},
	ParamCN: {
		{Min: 40, Max: 50, Tier: models.TierNormal, Advice: "Satellite signal very stable, no action needed"},
		{Min: 30, Max: 39.9, Tier: models.TierWarning, Advice: "Monitor the signal, check cables and connectors"},
		{Min: 0, Max: 29.9, Tier: models.TierTrouble, Advice: "Re-point the dish, check LNB and dish, repair or replace immediately"},
	},
	ParamMargin: {
		{Min: 20, Max: 30, Tier: models.TierNormal, Advice: "Link margin very safe, no action needed"},
		{Min: 10, Max: 19.9, Tier: models.TierWarning, Advice: "Check RF connectors and make sure the dish path is unobstructed"},
		{Min: 0, Max: 9.9, Tier: models.TierTrouble, Advice: "Re-align the dish, check the LNB and coaxial cabling"},
	},
	ParamVoltage: {
		{Min: 215, Max: 225, Tier: models.TierNormal, Advice: "Voltage stable"},
		{Min: 210, Max: 214, Tier: models.TierWarning, Advice: "Monitor the voltage, switch in the stabilizer if needed"},
		{Min: 226, Max: 230, Tier: models.TierWarning, Advice: "Monitor the voltage, switch in the stabilizer if needed"},
		{Min: 0, Max: 209, Tier: models.TierTrouble, Advice: "Check mains/UPS supply and distribution cabling, run the generator if critical"},
		{Min: 231, Max: 300, Tier: models.TierTrouble, Advice: "Check mains/UPS supply and distribution cabling, run the generator if critical"},
	},
	ParamTemperature: {
		{Min: 17, Max: 20.9, Tier: models.TierNormal, Advice: "Temperature normal"},
		{Min: 21, Max: 25.9, Tier: models.TierWarning, Advice: "Check cooling, clean AC filters"},
		{Min: 26, Max: 100, Tier: models.TierTrouble, Advice: "Service the AC or add cooling immediately"},
	},
}

// Validate checks the table is well-formed. A malformed table is a
// configuration error and must halt startup.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("threshold table is empty")
	}
	for _, param := range Parameters {
		ranges, ok := t[param]
		if !ok || len(ranges) == 0 {
			return fmt.Errorf("threshold table: parameter %q has no ranges", param)
		}
		for i, r := range ranges {
			if r.Min > r.Max {
				return fmt.Errorf("threshold table: %s range %d has min %v > max %v", param, i, r.Min, r.Max)
			}
			if !r.Tier.Valid() {
				return fmt.Errorf("threshold table: %s range %d has invalid tier %q", param, i, r.Tier)
			}
			if r.Advice == "" {
				return fmt.Errorf("threshold table: %s range %d has no advice", param, i)
			}
		}
	}
	return nil
}
