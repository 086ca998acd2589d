package main

import (
	"github.com/mwinkler/spesen/pkg/csv"
	"github.com/mwinkler/spesen/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	employee  string
	minAmount float64
	maxAmount float64
}

// toFilterFunc turns the flag values into a csv export filter. Dates are
// ISO strings, so plain lexicographic comparison orders them correctly.
func (f *filters) toFilterFunc() csv.FilterFunc[*models.Movement] {
	return func(m *models.Movement) bool {
		if f.startDate != "" && m.Date < f.startDate {
			return false
		}
		if f.endDate != "" && m.Date > f.endDate {
			return false
		}
		if f.employee != "" && m.EmployeeID != f.employee {
			return false
		}
		if f.minAmount != 0 && m.Amount < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && m.Amount > f.maxAmount {
			return false
		}
		return true
	}
}
