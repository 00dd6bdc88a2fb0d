package models

import "fmt"

// Shifts are the three 8-hour operator shifts for the daily checklist.
var Shifts = []string{
	"Shift 1: 00:00-08:00",
	"Shift 2: 08:00-16:00",
	"Shift 3: 16:00-00:00",
}

// ValidShift reports whether s is one of the three shifts.
func ValidShift(s string) bool {
	for _, shift := range Shifts {
		if s == shift {
			return true
		}
	}
	return false
}

// SubsystemResult records the operator-chosen condition for one
// subsystem together with the canned description and recommendation
// for that condition.
type SubsystemResult struct {
	Condition      Tier   `json:"condition"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ChecklistEntry is one submitted shift checklist. Entries are an
// append-only log: identical (date, shift) submissions both survive,
// unlike readings.
type ChecklistEntry struct {
	ID       string                     `json:"id"`
	Date     Date                       `json:"date"`
	Shift    string                     `json:"shift"`
	Operator string                     `json:"operator"`
	Results  map[string]SubsystemResult `json:"results"`
}

// Validate checks the submission header; per-subsystem validation is
// done by the checklist evaluator which owns the subsystem table.
func (e ChecklistEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("checklist date is required")
	}
	if !ValidShift(e.Shift) {
		return fmt.Errorf("invalid shift %q", e.Shift)
	}
	return nil
}
