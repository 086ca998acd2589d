package importer

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinkler/spesen/pkg/models"
)

var (
	dispoFixture = []byte(`SPESENEXPORT Januar 2026
Datum        PersNr  Einsatzort
----------------------------------------
05.01.2026  1092   Acme Corp
06.01.2026  1092   Acme Corp`)

	timeFixture = []byte(`Personalnummer;Name;Vorname;Abteilung;Datum;Kommt;Geht
1092;Muster;Max;Fuhrpark;05.01.2026;06:00;16:00
1092;Muster;Max;Fuhrpark;06.01.2026;00:00;00:00`)
)

func fixtureConfig() *models.AppConfig {
	return &models.AppConfig{
		AddStartMins: 15,
		SubEndMins:   15,
		Rules:        []models.ExpenseRule{{HoursThreshold: 8, Amount: 15}},
		Timesheet:    models.DefaultTimesheetLayout(),
	}
}

func TestRunScenario(t *testing.T) {
	imp := New(log.New(io.Discard))

	result, err := imp.Run(dispoFixture, timeFixture, "zeiten.csv", fixtureConfig(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Movements, 2)

	merged := result.Movements[0]
	assert.Equal(t, "1092", merged.EmployeeID)
	assert.Equal(t, "2026-01-05", merged.Date)
	assert.Equal(t, "Acme Corp", merged.Location)
	assert.Equal(t, "06:15", merged.StartTimeCorr)
	assert.Equal(t, "15:45", merged.EndTimeCorr)
	assert.Equal(t, 9.5, merged.DurationNetto)
	assert.Equal(t, 15.0, merged.Amount)
	assert.NotEmpty(t, merged.ID)

	// the 00:00 row carries no attendance: dispo data only
	locOnly := result.Movements[1]
	assert.Equal(t, "2026-01-06", locOnly.Date)
	assert.Equal(t, "Acme Corp", locOnly.Location)
	assert.False(t, locOnly.HasTimes())

	assert.NotEmpty(t, result.Logs)
}

func TestRunIsIdempotentAcrossPasses(t *testing.T) {
	imp := New(log.New(io.Discard))

	first, err := imp.Run(dispoFixture, timeFixture, "zeiten.csv", fixtureConfig(), nil)
	require.NoError(t, err)

	second, err := imp.Run(dispoFixture, timeFixture, "zeiten.csv", fixtureConfig(), first.Movements)
	require.NoError(t, err)

	require.Len(t, second.Movements, len(first.Movements))
	for i, m := range first.Movements {
		assert.Equal(t, *m, *second.Movements[i], "movement %d changed across identical re-imports", i)
	}
}

func TestRunZeroCrossMatchFails(t *testing.T) {
	imp := New(log.New(io.Discard))

	mismatched := []byte(`Personalnummer;Name;Vorname;Abteilung;Datum;Kommt;Geht
9999;Fremd;Person;Fuhrpark;05.01.2026;06:00;16:00`)

	result, err := imp.Run(dispoFixture, mismatched, "zeiten.csv", fixtureConfig(), nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	// both sides still surface their records for inspection
	assert.Len(t, result.Movements, 3)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	imp := New(log.New(io.Discard))

	cfg := fixtureConfig()
	cfg.Rules = append(cfg.Rules, models.ExpenseRule{HoursThreshold: 8, Amount: 30})

	_, err := imp.Run(dispoFixture, timeFixture, "zeiten.csv", cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule threshold")
}

func TestRunDoesNotMutateSeed(t *testing.T) {
	imp := New(log.New(io.Discard))

	seed := []*models.Movement{{
		ID:         "stable",
		EmployeeID: "1092",
		Date:       "2026-01-05",
	}}

	result, err := imp.Run(dispoFixture, timeFixture, "zeiten.csv", fixtureConfig(), seed)
	require.NoError(t, err)

	assert.Empty(t, seed[0].Location, "seed records must not be mutated")
	assert.Equal(t, "stable", result.Movements[0].ID, "seeded key keeps its id")
	assert.Equal(t, "Acme Corp", result.Movements[0].Location)
}
