package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

func reading(date models.Date, slot string, power float64) models.Reading {
	return models.Reading{
		Date:        date,
		Slot:        slot,
		PowerOutput: power,
		VSWR:        1.05,
		CN:          42,
		Margin:      22,
		VoltageR:    220,
		VoltageS:    221,
		VoltageT:    219,
		Temperature: 19,
	}
}

func TestFilterRange(t *testing.T) {
	d1 := models.NewDate(2025, 5, 10)
	d2 := models.NewDate(2025, 5, 11)
	d3 := models.NewDate(2025, 5, 12)
	readings := []models.Reading{
		reading(d3, "02:00", 10100),
		reading(d1, "06:00", 10200),
		reading(d1, "02:00", 10300),
		reading(d2, "02:00", 10400),
	}

	got, err := FilterRange(readings, d1, d2)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by date and slot clock, not input order.
	assert.Equal(t, 10300.0, got[0].PowerOutput)
	assert.Equal(t, 10200.0, got[1].PowerOutput)
	assert.Equal(t, 10400.0, got[2].PowerOutput)
}

func TestFilterRangeSingleDay(t *testing.T) {
	d := models.NewDate(2025, 5, 10)
	readings := []models.Reading{
		reading(d, "02:00", 10100),
		reading(models.NewDate(2025, 5, 11), "02:00", 10200),
	}

	got, err := FilterRange(readings, d, d)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10100.0, got[0].PowerOutput)
}

func TestFilterRangeInvalid(t *testing.T) {
	_, err := FilterRange(nil, models.NewDate(2025, 5, 11), models.NewDate(2025, 5, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBuildTrend(t *testing.T) {
	d := models.NewDate(2025, 5, 10)
	readings := []models.Reading{
		reading(d, "02:00", 10000),
		reading(d, "06:00", 10500),
		reading(d, "10:00", 11000),
	}

	trend, err := BuildTrend(readings, d, d)
	require.NoError(t, err)

	require.Len(t, trend.Series["Power Output (W)"], 3)
	assert.True(t, trend.Series["Power Output (W)"][0].At.Before(trend.Series["Power Output (W)"][2].At))

	var power Summary
	for _, s := range trend.Summary {
		if s.Parameter == "Power Output (W)" {
			power = s
		}
	}
	assert.Equal(t, 3, power.Count)
	assert.Equal(t, 10000.0, power.Min)
	assert.Equal(t, 11000.0, power.Max)
	assert.Equal(t, 10500.0, power.Mean)
}

func TestBuildTrendEmptyRange(t *testing.T) {
	d := models.NewDate(2025, 5, 10)
	trend, err := BuildTrend(nil, d, d)
	require.NoError(t, err)
	assert.Empty(t, trend.Series)
	assert.Empty(t, trend.Summary)
	assert.Equal(t, TrendParameters, trend.Parameters)
}

func TestBuildTrendInvalidRange(t *testing.T) {
	_, err := BuildTrend(nil, models.NewDate(2025, 5, 11), models.NewDate(2025, 5, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
