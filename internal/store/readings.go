package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// Readings is the repository for metering readings. One row per
// (date, slot): putting a reading with an existing key replaces the old
// row. The lock makes each load→merge→save cycle a single logical
// transaction.
type Readings struct {
	store  Store
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewReadings(store Store, logger *logrus.Logger) *Readings {
	return &Readings{store: store, logger: logger}
}

// All returns the persisted readings. An unreadable collection is
// logged and treated as no history yet; rows that fail to decode are
// skipped individually.
func (r *Readings) All(ctx context.Context) ([]models.Reading, error) {
	rows, err := r.store.Load(ctx, CollectionReadings)
	if err != nil {
		r.logger.Warnf("readings collection unreadable, treating as empty: %v", err)
		return nil, nil
	}
	readings := make([]models.Reading, 0, len(rows))
	for _, row := range rows {
		reading, err := DecodeReading(row)
		if err != nil {
			r.logger.Warnf("skipping undecodable reading row: %v", err)
			continue
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// Put stores a reading, superseding any prior row with the same
// (date, slot) key. The merge runs on raw rows so rows this build can
// no longer decode are still carried through the rewrite.
func (r *Readings) Put(ctx context.Context, reading models.Reading) error {
	if err := reading.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.Load(ctx, CollectionReadings)
	if err != nil {
		r.logger.Warnf("readings collection unreadable, starting fresh: %v", err)
		existing = nil
	}

	dateKey := reading.Date.String()
	merged := make([]Row, 0, len(existing)+1)
	for _, row := range existing {
		if row[colDate] == dateKey && row[colSlot] == reading.Slot {
			continue
		}
		merged = append(merged, row)
	}
	merged = append(merged, EncodeReading(reading))

	if err := r.store.Save(ctx, CollectionReadings, merged); err != nil {
		return fmt.Errorf("save reading %s: %w", reading.Key(), err)
	}
	return nil
}
