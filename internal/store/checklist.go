package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/rules"
)

// Checklist is the repository for daily shift checklists. Unlike
// readings this is an append-only log: a second submission for the same
// date and shift is a second row.
type Checklist struct {
	store  Store
	table  rules.ChecklistTable
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewChecklist(store Store, table rules.ChecklistTable, logger *logrus.Logger) *Checklist {
	return &Checklist{store: store, table: table, logger: logger}
}

// All returns the persisted checklist entries in submission order.
func (c *Checklist) All(ctx context.Context) ([]models.ChecklistEntry, error) {
	rows, err := c.store.Load(ctx, CollectionChecklist)
	if err != nil {
		c.logger.Warnf("checklist collection unreadable, treating as empty: %v", err)
		return nil, nil
	}
	entries := make([]models.ChecklistEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := DecodeChecklistEntry(row, c.table)
		if err != nil {
			c.logger.Warnf("skipping undecodable checklist row: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Append stores a new checklist entry after the existing ones.
func (c *Checklist) Append(ctx context.Context, entry models.ChecklistEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.store.Load(ctx, CollectionChecklist)
	if err != nil {
		c.logger.Warnf("checklist collection unreadable, starting fresh: %v", err)
		existing = nil
	}
	merged := append(existing, EncodeChecklistEntry(entry))

	if err := c.store.Save(ctx, CollectionChecklist, merged); err != nil {
		return fmt.Errorf("append checklist entry for %s %s: %w", entry.Date, entry.Shift, err)
	}
	return nil
}
