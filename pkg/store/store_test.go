package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinkler/spesen/pkg/models"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "movements.yaml"))

	movements, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "movements.yaml"))

	in := []*models.Movement{
		{
			ID:            "a1",
			EmployeeID:    "1092",
			Date:          "2026-01-05",
			Location:      "Acme Corp, Beta GmbH",
			StartTimeRaw:  "06:00",
			EndTimeRaw:    "16:00",
			StartTimeCorr: "06:15",
			EndTimeCorr:   "15:45",
			DurationNetto: 9.5,
			Amount:        15,
		},
		{
			ID:         "a2",
			EmployeeID: "2044",
			Date:       "2026-01-06",
			IsManual:   true,
		},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, *in[0], *out[0])
	assert.Equal(t, *in[1], *out[1])
}

func TestSaveReplacesExisting(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "movements.yaml"))

	require.NoError(t, s.Save([]*models.Movement{{ID: "old", EmployeeID: "1", Date: "2026-01-01"}}))
	require.NoError(t, s.Save([]*models.Movement{{ID: "new", EmployeeID: "2", Date: "2026-01-02"}}))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}
