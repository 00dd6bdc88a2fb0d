package schedule

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// ReadingSource yields the persisted readings for existence checks.
// *store.Readings satisfies it.
type ReadingSource interface {
	All(ctx context.Context) ([]models.Reading, error)
}

// Detector answers whether the expected reading for a slot was entered.
type Detector struct {
	source ReadingSource
	logger *logrus.Logger
}

func NewDetector(source ReadingSource, logger *logrus.Logger) *Detector {
	return &Detector{source: source, logger: logger}
}

// Exists reports whether any persisted reading matches the target date
// and slot exactly. An unreadable store counts as no history yet.
func (d *Detector) Exists(ctx context.Context, date models.Date, slot string) bool {
	readings, err := d.source.All(ctx)
	if err != nil {
		d.logger.Warnf("reading history unavailable, treating as empty: %v", err)
		return false
	}
	for _, r := range readings {
		if r.Date.Equal(date) && r.Slot == slot {
			return true
		}
	}
	return false
}
