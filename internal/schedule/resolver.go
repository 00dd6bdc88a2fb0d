// Package schedule decides, from wall-clock time alone, whether a
// reading reminder or a missing-data check is due, and drives the
// resulting notifications. It owns no timer: an external scheduler
// (cron, the reminder binary, or the API) invokes one cycle at a time.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Action distinguishes the two reminder modes.
type Action string

const (
	// ActionAlarm is the pre-reading heads-up sent shortly before a slot.
	ActionAlarm Action = "ALARM"
	// ActionCheck is the post-reading existence check for a slot.
	ActionCheck Action = "CHECK"
)

// Window is a resolved match: which slot is near, the slot's target
// instant (date included), and which action is due.
type Window struct {
	Slot   string
	Target time.Time
	Action Action
}

const (
	defaultAlarmLead = 20 * time.Minute
	defaultCheckLag  = time.Hour
	defaultTolerance = 5 * time.Minute
)

type slotTime struct {
	label  string
	hour   int
	minute int
}

// Resolver matches an instant against the daily reading slots.
type Resolver struct {
	slots     []slotTime
	alarmLead time.Duration
	checkLag  time.Duration
	tolerance time.Duration
}

// NewResolver builds a resolver over HH:MM slot strings. Declared order
// is preserved: when the current time falls in windows of more than one
// slot, the earliest-declared slot wins.
func NewResolver(slots []string) (*Resolver, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("no reading slots configured")
	}
	parsed := make([]slotTime, 0, len(slots))
	for _, s := range slots {
		st, err := parseSlot(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, st)
	}
	return &Resolver{
		slots:     parsed,
		alarmLead: defaultAlarmLead,
		checkLag:  defaultCheckLag,
		tolerance: defaultTolerance,
	}, nil
}

func parseSlot(s string) (slotTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return slotTime{}, fmt.Errorf("malformed slot time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return slotTime{}, fmt.Errorf("malformed slot time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return slotTime{}, fmt.Errorf("malformed slot time %q", s)
	}
	return slotTime{label: s, hour: hour, minute: minute}, nil
}

// Resolve returns the first slot, in declared order, whose alarm or
// check window contains now; within a slot the alarm window is tried
// before the check window. The second return is false when no window
// matches. Pure given now; no I/O.
func (r *Resolver) Resolve(now time.Time) (Window, bool) {
	for i, st := range r.slots {
		target := r.targetFor(now, i)
		alarmAt := target.Add(-r.alarmLead)
		checkAt := target.Add(r.checkLag)

		if within(now, alarmAt, r.tolerance) {
			return Window{Slot: st.label, Target: target, Action: ActionAlarm}, true
		}
		if within(now, checkAt, r.tolerance) {
			return Window{Slot: st.label, Target: target, Action: ActionCheck}, true
		}
	}
	return Window{}, false
}

// targetFor computes the slot's target instant on now's calendar day.
// The last slot looks back one day when now is past midnight but before
// the first slot: a 22:00 reading still belongs to the previous day
// while the clock reads 00:xx or 01:xx.
func (r *Resolver) targetFor(now time.Time, i int) time.Time {
	st := r.slots[i]
	target := time.Date(now.Year(), now.Month(), now.Day(), st.hour, st.minute, 0, 0, now.Location())
	if i == len(r.slots)-1 && now.Hour() < r.slots[0].hour {
		target = target.AddDate(0, 0, -1)
	}
	return target
}

// within reports whether now falls in [center-tol, center+tol], both
// ends inclusive.
func within(now, center time.Time, tol time.Duration) bool {
	return !now.Before(center.Add(-tol)) && !now.After(center.Add(tol))
}
