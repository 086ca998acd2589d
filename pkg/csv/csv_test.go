package csv

import (
	"strings"
	"testing"

	"github.com/mwinkler/spesen/pkg/models"
)

func TestCreate(t *testing.T) {
	movements := []*models.Movement{
		{EmployeeID: "1092", Date: "2026-01-05", Location: "Acme Corp", Amount: 15},
		{EmployeeID: "2044", Date: "2026-01-06", Location: "Beta, GmbH", Amount: 0},
	}

	out := string(Create(models.ExportHeader, movements, nil))
	lines := strings.Split(strings.TrimSpace(out), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "EmployeeID,Date,Location") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], `"Beta, GmbH"`) {
		t.Errorf("location with comma must be quoted: %q", lines[2])
	}
}

func TestCreateWithFilter(t *testing.T) {
	movements := []*models.Movement{
		{EmployeeID: "1092", Date: "2026-01-05", Amount: 15},
		{EmployeeID: "2044", Date: "2026-01-06"},
	}

	onlyPaid := func(m *models.Movement) bool { return m.Amount > 0 }
	out := string(Create(models.ExportHeader, movements, onlyPaid))

	if strings.Contains(out, "2044") {
		t.Errorf("filtered record leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "1092") {
		t.Errorf("expected record missing:\n%s", out)
	}
}
