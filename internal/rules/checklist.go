package rules

import (
	"fmt"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// Subsystems are the site equipment covered by the daily checklist, in
// form order.
var Subsystems = []string{
	"Transmitter (Exciter & PA)",
	"Antenna",
	"Encoder",
	"IRD",
	"Multiplexer",
	"Satellite Dish + LNB",
	"AVR",
	"Grounding",
	"Cooling System",
	"Transmission Room AC",
	"UPS",
	"Generator",
	"Router",
	"Switch Hub",
	"Multiviewer",
	"Set Top Box",
	"RCS",
}

// Guidance is the canned description and recommendation for one
// subsystem condition.
type Guidance struct {
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ChecklistTable maps subsystem name and condition tier to guidance.
// Every subsystem must define all three tiers; a hole in the table is a
// configuration error caught by Validate at startup.
type ChecklistTable map[string]map[models.Tier]Guidance

// Describe looks up the guidance for an operator-chosen condition.
func (ct ChecklistTable) Describe(subsystem string, tier models.Tier) (Guidance, error) {
	byTier, ok := ct[subsystem]
	if !ok {
		return Guidance{}, fmt.Errorf("unknown subsystem %q", subsystem)
	}
	g, ok := byTier[tier]
	if !ok {
		return Guidance{}, fmt.Errorf("subsystem %s has no guidance for tier %q", subsystem, tier)
	}
	return g, nil
}

// Validate checks the table covers every subsystem with all three
// tiers. Called once at startup; failure is fatal.
func (ct ChecklistTable) Validate() error {
	for _, sub := range Subsystems {
		byTier, ok := ct[sub]
		if !ok {
			return fmt.Errorf("checklist table: missing subsystem %q", sub)
		}
		for _, tier := range models.Tiers {
			g, ok := byTier[tier]
			if !ok {
				return fmt.Errorf("checklist table: subsystem %s missing tier %q", sub, tier)
			}
			if g.Description == "" || g.Recommendation == "" {
				return fmt.Errorf("checklist table: subsystem %s tier %s has empty guidance", sub, tier)
			}
		}
	}
	if len(ct) != len(Subsystems) {
		return fmt.Errorf("checklist table: has %d subsystems, want %d", len(ct), len(Subsystems))
	}
	return nil
}

// DefaultChecklist is the site's fixed checklist guidance.
var DefaultChecklist = ChecklistTable{
	"Transmitter (Exciter & PA)": {
		models.TierNormal: {
			Description:    "Output power stable, temperature normal, no alarms",
			Recommendation: "No action, transmitter condition normal",
		},
		models.TierWarning: {
			Description:    "Output power dropping, temperature rising",
			Recommendation: "Check air cooling, clean filters, monitor output power",
		},
		models.TierTrouble: {
			Description:    "Output power dropped sharply, overheating",
			Recommendation: "Check exciter/PA, run RF calibration, call a service technician",
		},
	},
	"Antenna": {
		models.TierNormal: {
			Description:    "VSWR normal, signal stable, antenna physically sound",
			Recommendation: "No action, antenna in good condition",
		},
		models.TierWarning: {
			Description:    "VSWR rising, power reflection starting; loose connector or degrading feeder suspected",
			Recommendation: "Check and tighten connectors, clean the feeder run, make sure connectors are free of corrosion and moisture",
		},
		models.TierTrouble: {
			Description:    "High VSWR, signal unstable or lost; possible cracked antenna, water ingress or damaged feeder",
			Recommendation: "Replace feeder/antenna, carry out physical repair immediately",
		},
	},
	"Encoder": {
		models.TierNormal: {
			Description:    "Bitrate stable, output normal",
			Recommendation: "No action, encoder working properly",
		},
		models.TierWarning: {
			Description:    "Bitrate down 10-20%, delay or stutter on video output",
			Recommendation: "Restart the encoder, check software and network",
		},
		models.TierTrouble: {
			Description:    "No encoder output (blank)",
			Recommendation: "Check encoder hardware, replace the unit if faulty",
		},
	},
	"IRD": {
		models.TierNormal: {
			Description:    "Input signal and video/audio output normal",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Signal quality degrading, occasional video/audio glitches",
			Recommendation: "Check input signal level, connectors and cabling, keep the unit from running hot",
		},
		models.TierTrouble: {
			Description:    "No signal, no video/audio output",
			Recommendation: "Check the RF or IP input source, reboot the IRD, verify input parameter configuration",
		},
	},
	"Multiplexer": {
		models.TierNormal: {
			Description:    "All inputs and outputs read normal, bitrate stable",
			Recommendation: "No action, MUX in good condition",
		},
		models.TierWarning: {
			Description:    "Inputs occasionally dropping or bitrate sagging",
			Recommendation: "Restart the MUX, check input/output ports",
		},
		models.TierTrouble: {
			Description:    "Inputs not read at all",
			Recommendation: "Service the MUX, check hardware and software",
		},
	},
	"Satellite Dish + LNB": {
		models.TierNormal: {
			Description:    "Dish pointing correct, signal strong, LNB in good condition",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Dish pointing drifted, signal weakening",
			Recommendation: "Re-align the dish, check and tighten LNB connectors",
		},
		models.TierTrouble: {
			Description:    "No signal at all",
			Recommendation: "Replace the LNB, check feeder cabling, re-point the dish",
		},
	},
	"AVR": {
		models.TierNormal: {
			Description:    "Output voltage stable",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Voltage fluctuating slightly",
			Recommendation: "Check AVR settings, cooling and cable connections",
		},
		models.TierTrouble: {
			Description:    "Large voltage swings, unstable",
			Recommendation: "Service the AVR, replace internal components if needed",
		},
	},
	"Grounding": {
		models.TierNormal: {
			Description:    "Resistance < 5 Ohm, cables and rods tidy, grounding sinks lightning and electrical faults safely",
			Recommendation: "No action, measure resistance periodically especially in the rainy season",
		},
		models.TierWarning: {
			Description:    "Resistance 5-7 Ohm, lightning dissipation degrading; strikes may not fully reach ground, corrosion at joints",
			Recommendation: "Add or repair ground rods, check ground cable joints for rust",
		},
		models.TierTrouble: {
			Description:    "Resistance > 7 Ohm, lightning protection ineffective; strike current can damage transmission equipment",
			Recommendation: "Repair the ground run, install extra rods, replace damaged cable/rods, re-test soil resistance afterwards",
		},
	},
	"Cooling System": {
		models.TierNormal: {
			Description:    "All fans normal, airflow strong",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Fan speed dropping or noisy",
			Recommendation: "Clean the fans, check bearings and power cabling",
		},
		models.TierTrouble: {
			Description:    "Fans dead",
			Recommendation: "Fit new fans, check the power supply",
		},
	},
	"Transmission Room AC": {
		models.TierNormal: {
			Description:    "Room temperature stable at 18-24°C",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Temperature 25-26°C",
			Recommendation: "Clean AC filters, check refrigerant",
		},
		models.TierTrouble: {
			Description:    "AC dead or not cooling, temperature above 27°C",
			Recommendation: "Recharge refrigerant, service the AC, check compressor and capacitor, replace the unit",
		},
	},
	"UPS": {
		models.TierNormal: {
			Description:    "Backup normal, batteries good, no alarms",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Short backup time, alarm indicator sounding",
			Recommendation: "Check the batteries, clean UPS ventilation, keep the room cool",
		},
		models.TierTrouble: {
			Description:    "No backup at all on mains failure",
			Recommendation: "Replace the batteries, service the UPS",
		},
	},
	"Generator": {
		models.TierNormal: {
			Description:    "Engine runs normally, load stable, enough fuel",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Engine hard to start, fuel nearly out",
			Recommendation: "Check the starter battery, refuel, clean or replace filters",
		},
		models.TierTrouble: {
			Description:    "Engine will not run or drops out",
			Recommendation: "Service the generator, change oil, filters or battery",
		},
	},
	"Router": {
		models.TierNormal: {
			Description:    "Internet connection smooth and stable",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Internet connection slowing down",
			Recommendation: "Restart the router, check LAN/fiber cabling",
		},
		models.TierTrouble: {
			Description:    "No internet connection",
			Recommendation: "Replace the router or contact the ISP",
		},
	},
	"Switch Hub": {
		models.TierNormal: {
			Description:    "All ports active, traffic flowing",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "One or more ports dead",
			Recommendation: "Use spare ports or replace the faulty port",
		},
		models.TierTrouble: {
			Description:    "All ports dead, unit will not power on",
			Recommendation: "Replace the switch hub, check the power supply",
		},
	},
	"Multiviewer": {
		models.TierNormal: {
			Description:    "All channels display normally on the monitor",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Some channels missing or delayed",
			Recommendation: "Restart the system, check matrix inputs/outputs",
		},
		models.TierTrouble: {
			Description:    "All channels blank",
			Recommendation: "Service or replace the multiviewer",
		},
	},
	"Set Top Box": {
		models.TierNormal: {
			Description:    "Channels lock normally, picture and sound clean",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Channels hard to lock, signal weakening",
			Recommendation: "Rescan channels, reset the STB",
		},
		models.TierTrouble: {
			Description:    "Cannot lock any channel",
			Recommendation: "Replace the STB or check the antenna",
		},
	},
	"RCS": {
		models.TierNormal: {
			Description:    "Remote control system running normally, all equipment monitored",
			Recommendation: "No action",
		},
		models.TierWarning: {
			Description:    "Slow response, data occasionally delayed",
			Recommendation: "Check the network and RCS software",
		},
		models.TierTrouble: {
			Description:    "Remote control/monitoring completely down",
			Recommendation: "Check RCS hardware/software, restart the server",
		},
	},
}

// EvaluateChecklist resolves the guidance for every submitted
// subsystem condition, rejecting unknown subsystems, unknown tiers
// and subsystems missing from the submission.
func (ct ChecklistTable) EvaluateChecklist(conditions map[string]models.Tier) (map[string]models.SubsystemResult, error) {
	results := make(map[string]models.SubsystemResult, len(Subsystems))
	for _, sub := range Subsystems {
		tier, ok := conditions[sub]
		if !ok {
			return nil, fmt.Errorf("missing condition for subsystem %q", sub)
		}
		if !tier.Valid() {
			return nil, fmt.Errorf("subsystem %s: invalid condition %q", sub, tier)
		}
		g, err := ct.Describe(sub, tier)
		if err != nil {
			return nil, err
		}
		results[sub] = models.SubsystemResult{
			Condition:      tier,
			Description:    g.Description,
			Recommendation: g.Recommendation,
		}
	}
	for sub := range conditions {
		if _, err := ct.Describe(sub, models.TierNormal); err != nil {
			return nil, err
		}
	}
	return results, nil
}
