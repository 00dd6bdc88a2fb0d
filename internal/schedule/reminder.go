package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/events"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/notifier"
)

// AlertSink receives a copy of every alert the reminder raises.
// *events.Publisher satisfies it; nil disables event publication.
type AlertSink interface {
	Publish(ctx context.Context, alert events.Alert) error
}

// Reminder runs one reminder cycle: resolve the current window, check
// reading existence when due, and fire notifications. Delivery is
// fire-and-forget: failures are logged, never propagated, never retried
// within the cycle.
type Reminder struct {
	resolver *Resolver
	detector *Detector
	gateway  notifier.Gateway
	sink     AlertSink
	logger   *logrus.Logger
}

func NewReminder(resolver *Resolver, detector *Detector, gateway notifier.Gateway, sink AlertSink, logger *logrus.Logger) *Reminder {
	return &Reminder{
		resolver: resolver,
		detector: detector,
		gateway:  gateway,
		sink:     sink,
		logger:   logger,
	}
}

// Outcome summarizes a cycle for callers that surface it (the manual
// trigger endpoint and the reminder binary).
type Outcome struct {
	Action    Action      `json:"action,omitempty"`
	Slot      string      `json:"slot,omitempty"`
	Date      models.Date `json:"date,omitempty"`
	Notified  bool        `json:"notified"`
	Delivered bool        `json:"delivered"`
}

// Run executes one cycle against the given instant.
func (r *Reminder) Run(ctx context.Context, now time.Time) Outcome {
	win, ok := r.resolver.Resolve(now)
	if !ok {
		r.logger.Infof("reminder cycle at %s: no slot window due", now.Format("15:04"))
		return Outcome{}
	}

	date := models.DateOf(win.Target)
	out := Outcome{Action: win.Action, Slot: win.Slot, Date: date}

	switch win.Action {
	case ActionAlarm:
		out.Notified = true
		out.Delivered = r.raise(ctx, "pre_reading", win, date, alarmMessage(win.Slot, date))
	case ActionCheck:
		if r.detector.Exists(ctx, date, win.Slot) {
			r.logger.Infof("reading for %s %s present, no alert", date, win.Slot)
			return out
		}
		out.Notified = true
		out.Delivered = r.raise(ctx, "missing_data", win, date, missingMessage(win.Slot, date))
	}
	return out
}

func (r *Reminder) raise(ctx context.Context, kind string, win Window, date models.Date, text string) bool {
	delivered := r.gateway.Send(ctx, text)
	if !delivered {
		r.logger.Errorf("%s alert delivery failed for slot %s %s", kind, date, win.Slot)
	} else {
		r.logger.Infof("%s alert sent for slot %s %s", kind, date, win.Slot)
	}
	if r.sink != nil {
		alert := events.Alert{
			Kind:     kind,
			Slot:     win.Slot,
			Date:     date.String(),
			Message:  text,
			RaisedAt: time.Now(),
		}
		if err := r.sink.Publish(ctx, alert); err != nil {
			r.logger.Errorf("alert event publish failed: %v", err)
		}
	}
	return delivered
}

func alarmMessage(slot string, date models.Date) string {
	return fmt.Sprintf(
		"🔔 *METERING INPUT ALARM!*\n"+
			"*GET READY!* The input window opens shortly.\n\n"+
			"*SCHEDULED SLOT:* *%s*\n"+
			"*DATE:* %s\n\n"+
			"Open the monitoring app and enter the reading at exactly *%s*.",
		slot, date.Time().Format("02-01-2006"), slot)
}

func missingMessage(slot string, date models.Date) string {
	return fmt.Sprintf(
		"❌ *MISSING DATA WARNING!*\n"+
			"The metering reading for slot *%s* has not been entered.\n\n"+
			"*MISSING SLOT:* *%s*\n"+
			"*DATE:* %s\n\n"+
			"The duty operator must report and enter the late reading immediately.",
		slot, slot, date.Time().Format("02-01-2006"))
}
