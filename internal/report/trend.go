// Package report turns reading history into trend series, summary
// statistics and downloadable spreadsheets. Chart drawing itself is the
// client's job; this package only prepares the data.
package report

import (
	"errors"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// ErrInvalidRange is reported when a query's start date is after its
// end date. Callers surface it as a validation failure with an empty
// result, never a crash.
var ErrInvalidRange = errors.New("start date is after end date")

// TrendParameters are the plottable series, in display order.
var TrendParameters = []string{
	"Power Output (W)",
	"VSWR",
	"C/N (dB)",
	"Margin (dB)",
	"Voltage R (V)",
	"Voltage S (V)",
	"Voltage T (V)",
	"TX Temperature (°C)",
}

// Point is one sample of a series.
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Summary aggregates one parameter over the selected range.
type Summary struct {
	Parameter string  `json:"parameter"`
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

// Trend is the per-parameter series plus summary statistics for a date
// range.
type Trend struct {
	Start      models.Date        `json:"start"`
	End        models.Date        `json:"end"`
	Parameters []string           `json:"parameters"`
	Series     map[string][]Point `json:"series"`
	Summary    []Summary          `json:"summary"`
}

// FilterRange returns the readings with start <= date <= end, ordered
// by observation time (date plus slot clock).
func FilterRange(readings []models.Reading, start, end models.Date) ([]models.Reading, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	var out []models.Reading
	for _, r := range readings {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return observedAt(out[i]).Before(observedAt(out[j]))
	})
	return out, nil
}

// observedAt combines a reading's date and slot into one instant.
func observedAt(r models.Reading) time.Time {
	clock, err := time.Parse("15:04", r.Slot)
	if err != nil {
		return r.Date.Time()
	}
	return r.Date.Time().Add(
		time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// BuildTrend assembles series and summaries for the readings inside
// [start, end].
func BuildTrend(readings []models.Reading, start, end models.Date) (Trend, error) {
	filtered, err := FilterRange(readings, start, end)
	if err != nil {
		return Trend{}, err
	}

	series := make(map[string][]Point, len(TrendParameters))
	for _, r := range filtered {
		at := observedAt(r)
		for param, value := range parameterValues(r) {
			series[param] = append(series[param], Point{At: at, Value: value})
		}
	}

	summaries := make([]Summary, 0, len(TrendParameters))
	for _, param := range TrendParameters {
		points := series[param]
		if len(points) == 0 {
			continue
		}
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.Value
		}
		summaries = append(summaries, Summary{
			Parameter: param,
			Count:     len(values),
			Min:       floats.Min(values),
			Max:       floats.Max(values),
			Mean:      stat.Mean(values, nil),
		})
	}

	return Trend{
		Start:      start,
		End:        end,
		Parameters: TrendParameters,
		Series:     series,
		Summary:    summaries,
	}, nil
}

func parameterValues(r models.Reading) map[string]float64 {
	return map[string]float64{
		"Power Output (W)":    r.PowerOutput,
		"VSWR":                r.VSWR,
		"C/N (dB)":            r.CN,
		"Margin (dB)":         r.Margin,
		"Voltage R (V)":       r.VoltageR,
		"Voltage S (V)":       r.VoltageS,
		"Voltage T (V)":       r.VoltageT,
		"TX Temperature (°C)": r.Temperature,
	}
}
