package parser

import (
	"regexp"
	"strings"
)

// Header, separator and title rows the disposition report embeds between
// data lines.
var dispoSentinels = []string{"Datum", "---", "SPESENEXPORT", "Zeitraum"}

var (
	reportLineRe = regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{4})\s+(\d+)\s+(.+)$`)
	delimiterRe  = regexp.MustCompile(`;|\t|,`)
	allDashesRe  = regexp.MustCompile(`^---+$`)
)

// dispoStrategy tries to extract an entry from a single line. Strategies are
// attempted in order; the first hit wins.
type dispoStrategy struct {
	name string
	fn   func(line string) (DispoEntry, bool)
}

var dispoStrategies = []dispoStrategy{
	{"report", parseReportLine},
	{"delimited", parseDelimitedLine},
}

// parseReportLine matches the printed report format:
// "05.01.2026  1092   Acme Corp".
func parseReportLine(line string) (DispoEntry, bool) {
	m := reportLineRe.FindStringSubmatch(line)
	if m == nil {
		return DispoEntry{}, false
	}
	return DispoEntry{
		EmployeeID: m[2],
		Date:       m[1],
		Location:   strings.TrimSpace(m[3]),
	}, true
}

// parseDelimitedLine handles semicolon, tab or comma separated exports.
// Whichever of the first two columns holds the date decides where the
// employee id sits; the location is always column 2.
func parseDelimitedLine(line string) (DispoEntry, bool) {
	parts := delimiterRe.Split(line, -1)
	if len(parts) < 3 {
		return DispoEntry{}, false
	}
	p0 := strings.TrimSpace(parts[0])
	p1 := strings.TrimSpace(parts[1])
	p2 := strings.TrimSpace(parts[2])

	switch {
	case dottedDateRe.MatchString(p1) || isoDateRe.MatchString(p1):
		return DispoEntry{EmployeeID: p0, Date: p1, Location: p2}, true
	case dottedDateRe.MatchString(p0):
		return DispoEntry{EmployeeID: p1, Date: p0, Location: p2}, true
	}
	return DispoEntry{}, false
}

// ParseDispo converts disposition lines into partial entries. Lines no
// strategy understands are dropped; they only show up in the caller's
// aggregate counts.
func (p *Parser) ParseDispo(lines []string) []DispoEntry {
	var entries []DispoEntry

line:
	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		for _, sentinel := range dispoSentinels {
			if strings.HasPrefix(trimmed, sentinel) {
				continue line
			}
		}

		var entry DispoEntry
		var ok bool
		for _, s := range dispoStrategies {
			if entry, ok = s.fn(trimmed); ok {
				p.logger.Debug("dispo line matched", "strategy", s.name)
				break
			}
		}
		if !ok || entry.EmployeeID == "" || entry.Date == "" {
			p.logger.Debug("no dispo strategy matched", "line", trimmed)
			continue
		}

		entry.EmployeeID = CleanID(entry.EmployeeID)
		entry.Date = NormalizeDate(entry.Date)
		if entry.Location == "---" || allDashesRe.MatchString(entry.Location) {
			entry.Location = ""
		}
		entries = append(entries, entry)
	}

	p.logger.Info("dispo parsing complete", "lines", len(lines), "entries", len(entries))
	return entries
}
