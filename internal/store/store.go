// Package store persists readings and checklist entries as flat tabular
// collections. A Store implementation only knows how to load and save a
// whole named collection; merge semantics (replace-by-key for readings,
// append-only for checklist entries) live in the repositories, which
// treat each load→merge→save cycle as one logical transaction under a
// coarse per-collection lock.
package store

import (
	"context"
	"time"
)

// Row is one stored record: a flat mapping of column name to cell text.
// Date-like columns are normalized to YYYY-MM-DD by the loader before
// anything else sees them.
type Row map[string]string

// Store is the durable tabular persistence collaborator. Save replaces
// the entire named collection.
type Store interface {
	Load(ctx context.Context, collection string) ([]Row, error)
	Save(ctx context.Context, collection string, rows []Row) error
}

// Logical collection names. The workbook backend maps them to sheets,
// the Postgres backend to partitions of one table.
const (
	CollectionReadings  = "METERING"
	CollectionChecklist = "DAILY_CHECKLIST"
)

// dateLayouts are the spellings accepted when normalizing date cells.
// Spreadsheet editors and older exports are not consistent about this.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"2006/01/02",
	"02-01-2006",
}

// normalizeDateCell rewrites a date cell to the canonical YYYY-MM-DD
// form. Unparseable cells are left alone; the row codec rejects them
// later and the row is skipped rather than crashing the caller.
func normalizeDateCell(cell string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return cell
}

// normalizeRows applies date normalization in place and drops rows
// whose every cell is empty.
func normalizeRows(rows []Row) []Row {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, v := range row {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if v, ok := row[colDate]; ok {
			row[colDate] = normalizeDateCell(v)
		}
		out = append(out, row)
	}
	return out
}
