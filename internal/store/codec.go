package store

import (
	"fmt"
	"strconv"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/rules"
)

// Shared column names.
const (
	colID       = "ID"
	colDate     = "Date"
	colSlot     = "Slot"
	colShift    = "Shift"
	colOperator = "Operator"
	colNote     = "Note"
	colAV       = "A/V Quality"

	colPower   = "Power Output (W)"
	colVSWR    = "VSWR"
	colCN      = "C/N (dB)"
	colMargin  = "Margin (dB)"
	colVoltR   = "Voltage R (V)"
	colVoltS   = "Voltage S (V)"
	colVoltT   = "Voltage T (V)"
	colTemp    = "TX Temperature (°C)"
	bitratePfx = "Bitrate "

	condSfx  = " Condition"
	recomSfx = " Recommendation"
)

// ReadingColumns is the declared column order of the readings
// collection.
func ReadingColumns() []string {
	cols := []string{
		colDate, colSlot,
		colPower, colVSWR, colCN, colMargin,
		colVoltR, colVoltS, colVoltT, colTemp,
	}
	for _, ch := range models.Channels {
		cols = append(cols, ch, bitratePfx+ch)
	}
	return append(cols, colAV, colOperator, colNote)
}

// ChecklistColumns is the declared column order of the checklist
// collection.
func ChecklistColumns() []string {
	cols := []string{colID, colDate, colShift, colOperator}
	for _, sub := range rules.Subsystems {
		cols = append(cols, sub+condSfx, sub+recomSfx)
	}
	return cols
}

// Columns reports the column order for a collection; repositories hand
// it to Save so backends write headers deterministically.
func Columns(collection string) []string {
	switch collection {
	case CollectionReadings:
		return ReadingColumns()
	case CollectionChecklist:
		return ChecklistColumns()
	default:
		return nil
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

// EncodeReading flattens a reading into a stored row.
func EncodeReading(r models.Reading) Row {
	row := Row{
		colDate:     r.Date.String(),
		colSlot:     r.Slot,
		colPower:    formatFloat(r.PowerOutput),
		colVSWR:     formatFloat(r.VSWR),
		colCN:       formatFloat(r.CN),
		colMargin:   formatFloat(r.Margin),
		colVoltR:    formatFloat(r.VoltageR),
		colVoltS:    formatFloat(r.VoltageS),
		colVoltT:    formatFloat(r.VoltageT),
		colTemp:     formatFloat(r.Temperature),
		colAV:       r.AVQuality,
		colOperator: r.Operator,
		colNote:     r.Note,
	}
	for _, ch := range models.Channels {
		status := r.Channels[ch]
		row[ch] = status.Status
		row[bitratePfx+ch] = formatFloat(status.Bitrate)
	}
	return row
}

// DecodeReading rebuilds a reading from a stored row.
func DecodeReading(row Row) (models.Reading, error) {
	date, err := models.ParseDate(row[colDate])
	if err != nil {
		return models.Reading{}, fmt.Errorf("reading row: %w", err)
	}
	r := models.Reading{
		Date:      date,
		Slot:      row[colSlot],
		AVQuality: row[colAV],
		Operator:  row[colOperator],
		Note:      row[colNote],
		Channels:  make(map[string]models.ChannelStatus, len(models.Channels)),
	}
	numeric := []struct {
		col string
		dst *float64
	}{
		{colPower, &r.PowerOutput},
		{colVSWR, &r.VSWR},
		{colCN, &r.CN},
		{colMargin, &r.Margin},
		{colVoltR, &r.VoltageR},
		{colVoltS, &r.VoltageS},
		{colVoltT, &r.VoltageT},
		{colTemp, &r.Temperature},
	}
	for _, n := range numeric {
		v, err := parseFloat(row[n.col])
		if err != nil {
			return models.Reading{}, fmt.Errorf("reading row %s %s: bad %s: %w", row[colDate], row[colSlot], n.col, err)
		}
		*n.dst = v
	}
	for _, ch := range models.Channels {
		bitrate, err := parseFloat(row[bitratePfx+ch])
		if err != nil {
			return models.Reading{}, fmt.Errorf("reading row %s %s: bad bitrate for %s: %w", row[colDate], row[colSlot], ch, err)
		}
		r.Channels[ch] = models.ChannelStatus{Status: row[ch], Bitrate: bitrate}
	}
	return r, nil
}

// EncodeChecklistEntry flattens a checklist entry into a stored row.
func EncodeChecklistEntry(e models.ChecklistEntry) Row {
	row := Row{
		colID:       e.ID,
		colDate:     e.Date.String(),
		colShift:    e.Shift,
		colOperator: e.Operator,
	}
	for _, sub := range rules.Subsystems {
		res := e.Results[sub]
		row[sub+condSfx] = string(res.Condition)
		row[sub+recomSfx] = res.Recommendation
	}
	return row
}

// DecodeChecklistEntry rebuilds a checklist entry from a stored row.
// Stored descriptions are not persisted; they are re-derived from the
// guidance table so wording fixes reach old entries too.
func DecodeChecklistEntry(row Row, table rules.ChecklistTable) (models.ChecklistEntry, error) {
	date, err := models.ParseDate(row[colDate])
	if err != nil {
		return models.ChecklistEntry{}, fmt.Errorf("checklist row: %w", err)
	}
	e := models.ChecklistEntry{
		ID:       row[colID],
		Date:     date,
		Shift:    row[colShift],
		Operator: row[colOperator],
		Results:  make(map[string]models.SubsystemResult, len(rules.Subsystems)),
	}
	for _, sub := range rules.Subsystems {
		cond := models.Tier(row[sub+condSfx])
		res := models.SubsystemResult{
			Condition:      cond,
			Recommendation: row[sub+recomSfx],
		}
		if g, err := table.Describe(sub, cond); err == nil {
			res.Description = g.Description
		}
		e.Results[sub] = res
	}
	return e, nil
}
