package models

import "fmt"

// Slots are the six daily instants at which a metering reading is
// expected, in declared order. The order is significant: the reminder
// scheduler resolves ties by scanning slots first to last.
var Slots = []string{"02:00", "06:00", "10:00", "14:00", "18:00", "22:00"}

// ValidSlot reports whether s is one of the six reading slots.
func ValidSlot(s string) bool {
	for _, slot := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Channels are the nine multiplexed TV services carried by the site, in
// the order they appear on the metering form and in stored rows.
var Channels = []string{
	"NET TV",
	"RTV",
	"JAMBI TV",
	"JEK TV",
	"SINPO TV",
	"TVRI NASIONAL",
	"TVRI WORLD",
	"TVRI SPORT",
	"TVRI JAMBI",
}

// Channel carry status values.
const (
	ChannelOK = "OK"
	ChannelNO = "NO"
)

// Audio/video quality values.
const (
	AVOK = "A/V OK"
	AVNO = "A/V NO"
)

// ChannelStatus is the per-channel portion of a reading: whether the
// service is on air and at what bitrate.
type ChannelStatus struct {
	Status  string  `json:"status"`
	Bitrate float64 `json:"bitrate_mbps"`
}

// Reading is one operator-entered observation bundle for a (date, slot)
// pair. A later reading with the same key replaces the earlier one.
type Reading struct {
	Date        Date                     `json:"date"`
	Slot        string                   `json:"slot"`
	PowerOutput float64                  `json:"power_output_w"`
	VSWR        float64                  `json:"vswr"`
	CN          float64                  `json:"cn_db"`
	Margin      float64                  `json:"margin_db"`
	VoltageR    float64                  `json:"voltage_r"`
	VoltageS    float64                  `json:"voltage_s"`
	VoltageT    float64                  `json:"voltage_t"`
	Temperature float64                  `json:"tx_temperature_c"`
	Channels    map[string]ChannelStatus `json:"channels"`
	AVQuality   string                   `json:"av_quality"`
	Operator    string                   `json:"operator"`
	Note        string                   `json:"note"`
}

// Key is the identity of a reading: one row per date and slot.
func (r Reading) Key() string {
	return r.Date.String() + " " + r.Slot
}

// Validate checks the parts of a reading the operator can get wrong.
// Numeric values are not range-checked here; classification handles
// out-of-band values as a normal outcome.
func (r Reading) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("reading date is required")
	}
	if !ValidSlot(r.Slot) {
		return fmt.Errorf("invalid reading slot %q", r.Slot)
	}
	for name, ch := range r.Channels {
		known := false
		for _, c := range Channels {
			if c == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown channel %q", name)
		}
		if ch.Status != ChannelOK && ch.Status != ChannelNO {
			return fmt.Errorf("channel %s: status must be %q or %q", name, ChannelOK, ChannelNO)
		}
	}
	if r.AVQuality != "" && r.AVQuality != AVOK && r.AVQuality != AVNO {
		return fmt.Errorf("av_quality must be %q or %q", AVOK, AVNO)
	}
	return nil
}
