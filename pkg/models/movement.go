package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeySeparator joins employee id and date into the composite key. Both
// sides must be normalized before keying, otherwise merges silently miss.
const KeySeparator = "_"

// LocationSeparator joins multiple work locations observed on the same day.
const LocationSeparator = ", "

// Movement is one reconciled employee/day expense record. The pair
// (EmployeeID, Date) identifies it; ID is generated once and survives
// re-imports that hit the same key.
type Movement struct {
	ID            string  `json:"id" yaml:"id"`
	EmployeeID    string  `json:"employeeId" yaml:"employeeId"`
	Date          string  `json:"date" yaml:"date"` // ISO YYYY-MM-DD
	Location      string  `json:"location" yaml:"location"`
	StartTimeRaw  string  `json:"startTimeRaw" yaml:"startTimeRaw"` // HH:MM
	EndTimeRaw    string  `json:"endTimeRaw" yaml:"endTimeRaw"`
	StartTimeCorr string  `json:"startTimeCorr" yaml:"startTimeCorr"`
	EndTimeCorr   string  `json:"endTimeCorr" yaml:"endTimeCorr"`
	DurationNetto float64 `json:"durationNetto" yaml:"durationNetto"` // hours
	Amount        float64 `json:"amount" yaml:"amount"`
	IsManual      bool    `json:"isManual" yaml:"isManual"`
}

// NewMovement creates an empty record for a composite key with a fresh id.
func NewMovement(employeeID, date string) *Movement {
	return &Movement{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
	}
}

// Key returns the composite key used by the reconciler table.
func (m *Movement) Key() string {
	return m.EmployeeID + KeySeparator + m.Date
}

// HasTimes reports whether both clock stamps were imported.
func (m *Movement) HasTimes() bool {
	return m.StartTimeRaw != "" && m.EndTimeRaw != ""
}

// ExportHeader names the columns emitted by Fields, in order.
var ExportHeader = []string{
	"EmployeeID", "Date", "Location",
	"StartRaw", "EndRaw", "StartCorr", "EndCorr",
	"DurationNetto", "Amount", "Manual",
}

// Fields renders the record for CSV export, column for column matching
// ExportHeader.
func (m *Movement) Fields() []string {
	return []string{
		m.EmployeeID, m.Date, m.Location,
		m.StartTimeRaw, m.EndTimeRaw, m.StartTimeCorr, m.EndTimeCorr,
		fmt.Sprintf("%.2f", m.DurationNetto),
		fmt.Sprintf("%.2f", m.Amount),
		fmt.Sprintf("%t", m.IsManual),
	}
}

// MergeLocation adds a location to the record unless it is already present.
// Locations accumulate in insertion order, joined by LocationSeparator, so a
// day with several drop-offs reads "A, B, C".
func (m *Movement) MergeLocation(location string) {
	if location == "" {
		return
	}
	var current []string
	for _, l := range strings.Split(m.Location, LocationSeparator) {
		if l != "" {
			current = append(current, l)
		}
	}
	for _, l := range current {
		if l == location {
			return
		}
	}
	current = append(current, location)
	m.Location = strings.Join(current, LocationSeparator)
}
