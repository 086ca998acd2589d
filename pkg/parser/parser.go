// Package parser extracts partial expense records from the two export
// formats of the dispatch system: the free-text disposition report and the
// semicolon-delimited time list. Lines that do not carry data are skipped,
// not reported as errors; the exports are full of header and footer noise.
package parser

import (
	"github.com/charmbracelet/log"
)

// DispoEntry is one parsed disposition line: a work location assigned to an
// employee for a date. EmployeeID and Date are already normalized.
type DispoEntry struct {
	EmployeeID string
	Date       string
	Location   string
}

// TimeEntry is one parsed time row: a raw clock pair for an employee and
// date. EmployeeID and Date are already normalized.
type TimeEntry struct {
	EmployeeID string
	Date       string
	Start      string
	End        string
}

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}
