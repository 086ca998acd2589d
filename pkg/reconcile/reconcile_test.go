package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinkler/spesen/pkg/models"
	"github.com/mwinkler/spesen/pkg/parser"
)

func testConfig() *models.AppConfig {
	return &models.AppConfig{
		AddStartMins: 15,
		SubEndMins:   15,
		Rules:        []models.ExpenseRule{{HoursThreshold: 8, Amount: 15}},
	}
}

func TestLocationUnion(t *testing.T) {
	r := New()
	r.ApplyDispo([]parser.DispoEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "A"},
		{EmployeeID: "1092", Date: "2026-01-05", Location: "B"},
		{EmployeeID: "1092", Date: "2026-01-05", Location: "A"},
	})

	movements := r.Movements()
	require.Len(t, movements, 1)
	assert.Equal(t, "A, B", movements[0].Location)
}

func TestMergeDispoAndTime(t *testing.T) {
	r := New()
	r.ApplyDispo([]parser.DispoEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "Acme Corp"},
	})
	r.ApplyTime([]parser.TimeEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Start: "06:00", End: "16:00"},
	}, testConfig())

	movements := r.Movements()
	require.Len(t, movements, 1)

	m := movements[0]
	assert.Equal(t, "Acme Corp", m.Location)
	assert.Equal(t, "06:00", m.StartTimeRaw)
	assert.Equal(t, "16:00", m.EndTimeRaw)
	assert.Equal(t, "06:15", m.StartTimeCorr)
	assert.Equal(t, "15:45", m.EndTimeCorr)
	assert.Equal(t, 9.5, m.DurationNetto)
	assert.Equal(t, 15.0, m.Amount)

	report := r.Report()
	assert.True(t, report.Success)
	assert.Equal(t, 1, report.MergeCount)
}

func TestApplyOrderCommutes(t *testing.T) {
	dispo := []parser.DispoEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "Acme Corp"},
		{EmployeeID: "2044", Date: "2026-01-05", Location: "Beta GmbH"},
	}
	times := []parser.TimeEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Start: "06:00", End: "16:00"},
		{EmployeeID: "3001", Date: "2026-01-06", Start: "07:00", End: "12:00"},
	}

	a := New()
	a.ApplyDispo(dispo)
	a.ApplyTime(times, testConfig())

	b := New()
	b.ApplyTime(times, testConfig())
	b.ApplyDispo(dispo)

	byKey := func(ms []*models.Movement) map[string]models.Movement {
		out := make(map[string]models.Movement, len(ms))
		for _, m := range ms {
			cp := *m
			cp.ID = "" // ids are freshly generated, identity is the key
			out[cp.Key()] = cp
		}
		return out
	}
	assert.Equal(t, byKey(a.Movements()), byKey(b.Movements()))
}

func TestSeedKeepsIDsStable(t *testing.T) {
	existing := &models.Movement{
		ID:         "fixed-id",
		EmployeeID: "1092",
		Date:       "2026-01-05",
		Location:   "Acme Corp",
	}

	r := New()
	r.Seed([]*models.Movement{existing})
	r.ApplyTime([]parser.TimeEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Start: "06:00", End: "16:00"},
	}, testConfig())

	movements := r.Movements()
	require.Len(t, movements, 1)
	assert.Equal(t, "fixed-id", movements[0].ID)
	assert.Equal(t, "06:00", movements[0].StartTimeRaw)

	// the seeded record itself must stay untouched
	assert.Empty(t, existing.StartTimeRaw)
}

func TestManualRecordsSurviveReimport(t *testing.T) {
	manual := &models.Movement{
		ID:            "m1",
		EmployeeID:    "1092",
		Date:          "2026-01-05",
		StartTimeRaw:  "06:00",
		EndTimeRaw:    "16:00",
		StartTimeCorr: "06:30",
		EndTimeCorr:   "15:00",
		DurationNetto: 8.5,
		Amount:        20,
		IsManual:      true,
	}

	r := New()
	r.Seed([]*models.Movement{manual})
	r.ApplyTime([]parser.TimeEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Start: "05:00", End: "17:00"},
	}, testConfig())

	movements := r.Movements()
	require.Len(t, movements, 1)

	m := movements[0]
	assert.Equal(t, "05:00", m.StartTimeRaw, "raw times follow the reimport")
	assert.Equal(t, "06:30", m.StartTimeCorr, "corrected times stay locked")
	assert.Equal(t, 8.5, m.DurationNetto)
	assert.Equal(t, 20.0, m.Amount)
}

func TestReportZeroCrossMatch(t *testing.T) {
	r := New()
	r.ApplyDispo([]parser.DispoEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "Acme Corp"},
	})
	// different key spelling on the time side: nothing matches
	r.ApplyTime([]parser.TimeEntry{
		{EmployeeID: "92", Date: "2026-01-05", Start: "06:00", End: "16:00"},
	}, testConfig())

	report := r.Report()
	assert.False(t, report.Success)
	assert.Equal(t, 0, report.MergeCount)

	joined := ""
	for _, line := range report.Lines {
		joined += line + "\n"
	}
	assert.Contains(t, joined, `"1092_2026-01-05"`)
	assert.Contains(t, joined, `"92_2026-01-05"`)
	assert.Contains(t, joined, "hint:")
}

func TestReportOneSidedImportSucceeds(t *testing.T) {
	r := New()
	r.ApplyDispo([]parser.DispoEntry{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "Acme Corp"},
	})

	report := r.Report()
	assert.True(t, report.Success)
	assert.Equal(t, 1, report.DispoCount)
	assert.Equal(t, 0, report.TimeCount)
}

func TestReportEmptyInput(t *testing.T) {
	report := New().Report()
	assert.False(t, report.Success)
}
