package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook persists collections as sheets of one spreadsheet file, the
// format the site has always kept its metering history in. The whole
// file is rewritten on save; a file-level mutex serializes access.
type Workbook struct {
	path string
	mu   sync.Mutex
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// Load reads a collection sheet. A missing file or missing sheet is an
// empty collection, not an error.
func (w *Workbook) Load(_ context.Context, collection string) ([]Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(collection)
	if err != nil || idx == -1 {
		return nil, nil
	}
	raw, err := f.GetRows(collection)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", collection, err)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return normalizeRows(rows), nil
}

// Save rewrites a collection sheet from scratch, leaving every other
// sheet untouched. The new content is staged on a scratch sheet and
// swapped in, so the workbook is never left without the collection.
func (w *Workbook) Save(_ context.Context, collection string, rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var (
		f       *excelize.File
		created bool
		err     error
	)
	if _, statErr := os.Stat(w.path); statErr == nil {
		f, err = excelize.OpenFile(w.path)
		if err != nil {
			return fmt.Errorf("open workbook %s: %w", w.path, err)
		}
	} else {
		f = excelize.NewFile()
		created = true
	}
	defer f.Close()

	const scratch = "__rewrite__"
	if _, err := f.NewSheet(scratch); err != nil {
		return fmt.Errorf("stage sheet: %w", err)
	}

	columns := Columns(collection)
	if err := writeSheetRow(f, scratch, 1, columns); err != nil {
		return err
	}
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		if err := writeSheetRow(f, scratch, i+2, cells); err != nil {
			return err
		}
	}

	if idx, _ := f.GetSheetIndex(collection); idx != -1 {
		if err := f.DeleteSheet(collection); err != nil {
			return fmt.Errorf("replace sheet %s: %w", collection, err)
		}
	}
	if created {
		// Drop the placeholder sheet excelize seeds new files with.
		if def := f.GetSheetName(0); def != scratch {
			_ = f.DeleteSheet(def)
		}
	}
	if err := f.SetSheetName(scratch, collection); err != nil {
		return fmt.Errorf("rename staged sheet: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
