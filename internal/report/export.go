package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/store"
)

// WriteReadingsWorkbook streams the given readings as a spreadsheet
// download, using the same column layout the record store keeps.
func WriteReadingsWorkbook(w io.Writer, readings []models.Reading) error {
	rows := make([]store.Row, len(readings))
	for i, r := range readings {
		rows[i] = store.EncodeReading(r)
	}
	return writeWorkbook(w, store.CollectionReadings, store.ReadingColumns(), rows)
}

// WriteChecklistWorkbook streams checklist entries as a spreadsheet
// download.
func WriteChecklistWorkbook(w io.Writer, entries []models.ChecklistEntry) error {
	rows := make([]store.Row, len(entries))
	for i, e := range entries {
		rows[i] = store.EncodeChecklistEntry(e)
	}
	return writeWorkbook(w, store.CollectionChecklist, store.ChecklistColumns(), rows)
}

func writeWorkbook(w io.Writer, sheet string, columns []string, rows []store.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name export sheet: %w", err)
	}
	if err := writeRow(f, sheet, 1, columns); err != nil {
		return err
	}
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write export workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("write export row %d: %w", rowNum, err)
	}
	return nil
}
