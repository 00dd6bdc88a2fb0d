package schedule

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/events"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

type fakeGateway struct {
	sent []string
	ok   bool
}

func (g *fakeGateway) Send(ctx context.Context, text string) bool {
	g.sent = append(g.sent, text)
	return g.ok
}

type fakeSource struct {
	readings []models.Reading
	err      error
}

func (s *fakeSource) All(ctx context.Context) ([]models.Reading, error) {
	return s.readings, s.err
}

type fakeSink struct {
	alerts []events.Alert
}

func (s *fakeSink) Publish(ctx context.Context, alert events.Alert) error {
	s.alerts = append(s.alerts, alert)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestReminder(t *testing.T, source *fakeSource, gateway *fakeGateway, sink AlertSink) *Reminder {
	t.Helper()
	resolver, err := NewResolver(models.Slots)
	require.NoError(t, err)
	logger := testLogger()
	return NewReminder(resolver, NewDetector(source, logger), gateway, sink, logger)
}

func TestRunAlarm(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	sink := &fakeSink{}
	r := newTestReminder(t, &fakeSource{}, gateway, sink)

	out := r.Run(context.Background(), at(5, 40))

	assert.Equal(t, ActionAlarm, out.Action)
	assert.Equal(t, "06:00", out.Slot)
	assert.Equal(t, models.NewDate(2025, 5, 10), out.Date)
	assert.True(t, out.Notified)
	assert.True(t, out.Delivered)

	require.Len(t, gateway.sent, 1)
	assert.Contains(t, gateway.sent[0], "METERING INPUT ALARM")
	assert.Contains(t, gateway.sent[0], "06:00")
	assert.Contains(t, gateway.sent[0], "10-05-2025")

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, "pre_reading", sink.alerts[0].Kind)
	assert.Equal(t, "06:00", sink.alerts[0].Slot)
}

func TestRunCheckMissing(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	sink := &fakeSink{}
	r := newTestReminder(t, &fakeSource{}, gateway, sink)

	out := r.Run(context.Background(), at(7, 0))

	assert.Equal(t, ActionCheck, out.Action)
	assert.Equal(t, "06:00", out.Slot)
	assert.True(t, out.Notified)
	assert.True(t, out.Delivered)

	require.Len(t, gateway.sent, 1)
	assert.Contains(t, gateway.sent[0], "MISSING DATA WARNING")

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, "missing_data", sink.alerts[0].Kind)
}

func TestRunCheckPresent(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	source := &fakeSource{readings: []models.Reading{
		{Date: models.NewDate(2025, 5, 10), Slot: "06:00"},
	}}
	r := newTestReminder(t, source, gateway, &fakeSink{})

	out := r.Run(context.Background(), at(7, 0))

	assert.Equal(t, ActionCheck, out.Action)
	assert.False(t, out.Notified)
	assert.Empty(t, gateway.sent)
}

func TestRunOutsideAnyWindow(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	r := newTestReminder(t, &fakeSource{}, gateway, &fakeSink{})

	out := r.Run(context.Background(), at(4, 30))

	assert.Equal(t, Outcome{}, out)
	assert.Empty(t, gateway.sent)
}

func TestRunDeliveryFailureIsNotRetried(t *testing.T) {
	gateway := &fakeGateway{ok: false}
	sink := &fakeSink{}
	r := newTestReminder(t, &fakeSource{}, gateway, sink)

	out := r.Run(context.Background(), at(5, 40))

	assert.True(t, out.Notified)
	assert.False(t, out.Delivered)
	assert.Len(t, gateway.sent, 1)
	// The event still goes out so the dashboard sees the attempt.
	assert.Len(t, sink.alerts, 1)
}

func TestRunNilSink(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	r := newTestReminder(t, &fakeSource{}, gateway, nil)

	out := r.Run(context.Background(), at(5, 40))
	assert.True(t, out.Delivered)
}

func TestDetectorExists(t *testing.T) {
	logger := testLogger()
	date := models.NewDate(2025, 5, 10)
	source := &fakeSource{readings: []models.Reading{
		{Date: date, Slot: "06:00"},
	}}
	d := NewDetector(source, logger)

	assert.True(t, d.Exists(context.Background(), date, "06:00"))
	assert.False(t, d.Exists(context.Background(), date, "10:00"))
	assert.False(t, d.Exists(context.Background(), models.NewDate(2025, 5, 11), "06:00"))
}

func TestDetectorUnreadableStore(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("disk gone")}
	d := NewDetector(source, testLogger())
	assert.False(t, d.Exists(context.Background(), models.NewDate(2025, 5, 10), "06:00"))
}

func TestWraparoundTarget(t *testing.T) {
	gateway := &fakeGateway{ok: true}
	source := &fakeSource{readings: []models.Reading{
		{Date: models.NewDate(2025, 5, 9), Slot: "22:00"},
	}}
	r := newTestReminder(t, source, gateway, nil)

	// 21:40 on the 10th is the alarm window of the same day's 22:00.
	out := r.Run(context.Background(), time.Date(2025, 5, 10, 21, 40, 0, 0, time.UTC))
	assert.Equal(t, ActionAlarm, out.Action)
	assert.Equal(t, models.NewDate(2025, 5, 10), out.Date)
}
