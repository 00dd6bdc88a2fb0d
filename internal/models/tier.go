package models

import "fmt"

// Tier is the severity level assigned to a measured parameter or a
// checklist subsystem.
type Tier string

const (
	TierNormal  Tier = "Normal"
	TierWarning Tier = "Warning"
	TierTrouble Tier = "Trouble"

	// TierNotApplicable is returned by classification when no threshold
	// range matches the measured value. It is a normal outcome, not an
	// error, and never appears in checklist entries.
	TierNotApplicable Tier = "N/A"
)

// Tiers lists the three tiers an operator can choose on the checklist,
// in ascending severity.
var Tiers = []Tier{TierNormal, TierWarning, TierTrouble}

// Valid reports whether t is one of the three selectable tiers.
func (t Tier) Valid() bool {
	return t == TierNormal || t == TierWarning || t == TierTrouble
}

// ParseTier converts an operator-supplied string into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}
