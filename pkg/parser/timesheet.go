package parser

import (
	"strings"

	"github.com/mwinkler/spesen/pkg/models"
)

// Rows with no attendance carry this stamp in both clock columns.
const noAttendance = "00:00"

// Columns below this index hold ids, names and dates; the positional scan
// only considers later columns as clock candidates.
const fixedScanOffset = 4

// LayoutKind selects how clock columns are located in a time export.
type LayoutKind int

const (
	// Fixed scans each row positionally: id in column 0, date wherever a
	// dotted date appears, clock stamps anywhere past fixedScanOffset.
	Fixed LayoutKind = iota
	// Named reads the column indices discovered in a header row.
	Named
)

// ColumnLayout is decided once per file and passed explicitly to the row
// parser instead of being re-detected per line.
type ColumnLayout struct {
	Kind LayoutKind
	ID   int
	Date int
	In   int
	Out  int
}

// DetectLayout inspects the first row of a time export. When its first
// column equals the configured header label the row is a header: its column
// names yield a Named layout and the row itself carries no data. Exports
// without a header row fall back to the positional layout.
func DetectLayout(fields []string, names models.TimesheetLayout) (layout ColumnLayout, header bool) {
	if len(fields) == 0 || CleanID(fields[0]) != names.HeaderLabel {
		return ColumnLayout{Kind: Fixed}, false
	}
	idx := func(name string) int {
		for i, f := range fields {
			if strings.TrimSpace(f) == name {
				return i
			}
		}
		return -1
	}
	date, in, out := idx(names.DateColumn), idx(names.InColumn), idx(names.OutColumn)
	if date < 0 || in < 0 || out < 0 {
		// Header row without the expected columns: consume it, scan the rest.
		return ColumnLayout{Kind: Fixed}, true
	}
	return ColumnLayout{Kind: Named, ID: 0, Date: date, In: in, Out: out}, true
}

// ParseTimesheet converts time-export lines into partial entries using one
// layout for the whole file.
func (p *Parser) ParseTimesheet(lines []string, names models.TimesheetLayout) []TimeEntry {
	if len(lines) == 0 {
		return nil
	}

	layout, header := DetectLayout(strings.Split(lines[0], ";"), names)
	p.logger.Debug("timesheet layout detected", "kind", layout.Kind, "header", header)

	rows := lines
	if header {
		rows = lines[1:]
	}

	var entries []TimeEntry
	for _, line := range rows {
		entry, ok := p.parseTimeRow(strings.Split(line, ";"), layout)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	p.logger.Info("timesheet parsing complete", "lines", len(lines), "entries", len(entries))
	return entries
}

// parseTimeRow extracts one clock pair. Short rows, summary rows without a
// valid date and no-attendance rows are skipped.
func (p *Parser) parseTimeRow(fields []string, layout ColumnLayout) (TimeEntry, bool) {
	var id, date, start, end string

	switch layout.Kind {
	case Named:
		maxIdx := layout.ID
		for _, i := range []int{layout.Date, layout.In, layout.Out} {
			if i > maxIdx {
				maxIdx = i
			}
		}
		if len(fields) <= maxIdx {
			p.logger.Debug("short time row", "columns", len(fields))
			return TimeEntry{}, false
		}
		id = fields[layout.ID]
		date = strings.TrimSpace(fields[layout.Date])
		start = strings.TrimSpace(fields[layout.In])
		end = strings.TrimSpace(fields[layout.Out])
	default:
		if len(fields) < 4 {
			return TimeEntry{}, false
		}
		dateIdx := -1
		for i, f := range fields {
			if dottedDateRe.MatchString(strings.TrimSpace(f)) {
				dateIdx = i
				break
			}
		}
		if dateIdx < 0 {
			return TimeEntry{}, false
		}
		id = fields[0]
		date = strings.TrimSpace(fields[dateIdx])
		start, end = scanClockRange(fields)
	}

	if !dottedDateRe.MatchString(date) {
		return TimeEntry{}, false
	}
	if start == "" || end == "" || start == noAttendance || end == noAttendance {
		return TimeEntry{}, false
	}

	return TimeEntry{
		EmployeeID: CleanID(id),
		Date:       NormalizeDate(date),
		Start:      start,
		End:        end,
	}, true
}

// scanClockRange picks the chronologically earliest and latest stamps among
// all clock-shaped values past the fixed offset. Fewer than two candidates
// means the row has no usable pair.
func scanClockRange(fields []string) (start, end string) {
	var times []string
	for _, f := range fields[min(fixedScanOffset, len(fields)):] {
		t := strings.TrimSpace(f)
		if isClock(t) && t != noAttendance {
			times = append(times, t)
		}
	}
	if len(times) < 2 {
		return "", ""
	}
	start, end = times[0], times[0]
	for _, t := range times[1:] {
		if clockMinutes(t) < clockMinutes(start) {
			start = t
		}
		if clockMinutes(t) > clockMinutes(end) {
			end = t
		}
	}
	return start, end
}

func clockMinutes(s string) int {
	h := int(s[0] - '0')
	i := 1
	if s[i] != ':' {
		h = h*10 + int(s[i]-'0')
		i++
	}
	return h*60 + int(s[i+1]-'0')*10 + int(s[i+2]-'0')
}
