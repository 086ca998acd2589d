package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"

	"github.com/mwinkler/spesen/pkg/models"
)

// ParseTimesheetXLS handles the legacy XLS variant of the time export. The
// sheet mirrors the semicolon file column for column, so rows go through the
// same layout detection and row parser.
func (p *Parser) ParseTimesheetXLS(data []byte, names models.TimesheetLayout) ([]TimeEntry, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	layout, header := DetectLayout(rows[0], names)
	p.logger.Debug("timesheet xls layout detected", "kind", layout.Kind, "header", header)
	if header {
		rows = rows[1:]
	}

	var entries []TimeEntry
	for _, row := range rows {
		entry, ok := p.parseTimeRow(row, layout)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	p.logger.Info("timesheet xls parsing complete", "rows", len(rows), "entries", len(entries))
	return entries, nil
}
