package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/rules"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testWorkbook(t *testing.T) *Workbook {
	t.Helper()
	return NewWorkbook(filepath.Join(t.TempDir(), "metering.xlsx"))
}

func sampleReading(date models.Date, slot string) models.Reading {
	return models.Reading{
		Date:        date,
		Slot:        slot,
		PowerOutput: 10500,
		VSWR:        1.05,
		CN:          42,
		Margin:      22,
		VoltageR:    220,
		VoltageS:    221,
		VoltageT:    219,
		Temperature: 19,
		Channels: map[string]models.ChannelStatus{
			"TVRI NASIONAL": {Status: models.ChannelOK, Bitrate: 4.5},
			"TVRI JAMBI":    {Status: models.ChannelOK, Bitrate: 3.2},
		},
		AVQuality: models.AVOK,
		Operator:  "Sari",
	}
}

func TestWorkbookMissingFileIsEmpty(t *testing.T) {
	w := testWorkbook(t)
	rows, err := w.Load(context.Background(), CollectionReadings)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWorkbookRoundTrip(t *testing.T) {
	w := testWorkbook(t)
	ctx := context.Background()

	in := []Row{
		{colDate: "2025-05-10", colSlot: "06:00", colOperator: "Sari"},
		{colDate: "2025-05-10", colSlot: "10:00", colOperator: "Budi"},
	}
	require.NoError(t, w.Save(ctx, CollectionReadings, in))

	out, err := w.Load(ctx, CollectionReadings)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "06:00", out[0][colSlot])
	assert.Equal(t, "Budi", out[1][colOperator])
}

func TestWorkbookSaveReplacesCollection(t *testing.T) {
	w := testWorkbook(t)
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, CollectionReadings, []Row{
		{colDate: "2025-05-10", colSlot: "06:00"},
		{colDate: "2025-05-10", colSlot: "10:00"},
	}))
	require.NoError(t, w.Save(ctx, CollectionReadings, []Row{
		{colDate: "2025-05-11", colSlot: "02:00"},
	}))

	out, err := w.Load(ctx, CollectionReadings)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-05-11", out[0][colDate])
}

func TestWorkbookCollectionsAreIndependent(t *testing.T) {
	w := testWorkbook(t)
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, CollectionReadings, []Row{{colDate: "2025-05-10", colSlot: "06:00"}}))
	require.NoError(t, w.Save(ctx, CollectionChecklist, []Row{{colDate: "2025-05-10", colShift: models.Shifts[0]}}))

	readings, err := w.Load(ctx, CollectionReadings)
	require.NoError(t, err)
	checklist, err := w.Load(ctx, CollectionChecklist)
	require.NoError(t, err)
	assert.Len(t, readings, 1)
	assert.Len(t, checklist, 1)
}

func TestReadingsPutReplacesByDateAndSlot(t *testing.T) {
	repo := NewReadings(testWorkbook(t), testLogger())
	ctx := context.Background()
	date := models.NewDate(2025, 5, 10)

	first := sampleReading(date, "06:00")
	first.PowerOutput = 9000
	require.NoError(t, repo.Put(ctx, first))

	other := sampleReading(date, "10:00")
	require.NoError(t, repo.Put(ctx, other))

	replacement := sampleReading(date, "06:00")
	replacement.PowerOutput = 10800
	require.NoError(t, repo.Put(ctx, replacement))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	var got models.Reading
	for _, r := range all {
		if r.Slot == "06:00" {
			got = r
		}
	}
	assert.Equal(t, 10800.0, got.PowerOutput)
	assert.Equal(t, models.ChannelOK, got.Channels["TVRI JAMBI"].Status)
	assert.Equal(t, 3.2, got.Channels["TVRI JAMBI"].Bitrate)
}

func TestReadingsPutRejectsInvalid(t *testing.T) {
	repo := NewReadings(testWorkbook(t), testLogger())
	bad := sampleReading(models.NewDate(2025, 5, 10), "07:00")
	assert.Error(t, repo.Put(context.Background(), bad))
}

func TestReadingsAllUnreadableStoreIsEmpty(t *testing.T) {
	repo := NewReadings(failingStore{}, testLogger())
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChecklistAppendKeepsDuplicates(t *testing.T) {
	repo := NewChecklist(testWorkbook(t), rules.DefaultChecklist, testLogger())
	ctx := context.Background()

	results, err := rules.DefaultChecklist.EvaluateChecklist(allNormal())
	require.NoError(t, err)

	entry := models.ChecklistEntry{
		ID:       "a",
		Date:     models.NewDate(2025, 5, 10),
		Shift:    models.Shifts[0],
		Operator: "Sari",
		Results:  results,
	}
	require.NoError(t, repo.Append(ctx, entry))

	entry.ID = "b"
	require.NoError(t, repo.Append(ctx, entry))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, all[0].Date, all[1].Date)
	assert.Equal(t, all[0].Shift, all[1].Shift)

	got := all[0].Results["Antenna"]
	want, err := rules.DefaultChecklist.Describe("Antenna", models.TierNormal)
	require.NoError(t, err)
	assert.Equal(t, models.TierNormal, got.Condition)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Recommendation, got.Recommendation)
}

func allNormal() map[string]models.Tier {
	conditions := map[string]models.Tier{}
	for _, sub := range rules.Subsystems {
		conditions[sub] = models.TierNormal
	}
	return conditions
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]Row, error) {
	return nil, assert.AnError
}

func (failingStore) Save(context.Context, string, []Row) error {
	return assert.AnError
}

func TestNormalizeDateCell(t *testing.T) {
	assert.Equal(t, "2025-05-10", normalizeDateCell("2025-05-10"))
	assert.Equal(t, "2025-05-10", normalizeDateCell("10-05-2025"))
	assert.Equal(t, "2025-05-10", normalizeDateCell("2025-05-10 06:00:00"))
	assert.Equal(t, "not a date", normalizeDateCell("not a date"))
}
