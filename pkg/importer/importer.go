// Package importer runs one full reconciliation pass: split both exports
// into lines, parse them, merge everything by employee+date and hand back
// the resulting record set with an ordered log. It is decoupled from CLI
// and HTTP details so both layers reuse it.
package importer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mwinkler/spesen/pkg/models"
	"github.com/mwinkler/spesen/pkg/parser"
	"github.com/mwinkler/spesen/pkg/reconcile"
)

// Result is what one import invocation produces. Movements is the complete
// merged record set, including seeded records that no line touched; the
// caller persists it as a whole.
type Result struct {
	Success   bool               `json:"success"`
	Movements []*models.Movement `json:"movements"`
	Logs      []string           `json:"logs"`
}

type Importer struct {
	logger *log.Logger
	parser *parser.Parser
}

func New(logger *log.Logger) *Importer {
	return &Importer{
		logger: logger,
		parser: parser.New(logger),
	}
}

// Run reconciles a disposition export and a time export against the
// previously persisted movements. timeFilename is only used to pick the
// time decoder (XLS workbooks versus semicolon text). Neither cfg nor
// existing are mutated.
//
// Row-level anomalies are skipped and show up in the aggregate counts; only
// pipeline-level failures (unreadable workbook, invalid configuration)
// return an error, in which case no movements are surfaced.
func (i *Importer) Run(dispoData, timeData []byte, timeFilename string, cfg *models.AppConfig, existing []*models.Movement) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var logs []string
	add := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	add("import started")
	add("existing records in memory: %d", len(existing))

	rec := reconcile.New()
	rec.Seed(existing)

	dispoLines := parser.Lines(dispoData)
	add("dispo file: %d lines read", len(dispoLines))
	rec.ApplyDispo(i.parser.ParseDispo(dispoLines))

	if isWorkbook(timeFilename) {
		add("time file: XLS workbook")
	} else {
		add("time file: %d lines read", len(parser.Lines(timeData)))
	}
	timeEntries, err := i.parseTime(timeData, timeFilename, cfg)
	if err != nil {
		return nil, err
	}
	rec.ApplyTime(timeEntries, cfg)

	report := rec.Report()
	logs = append(logs, report.Lines...)

	i.logger.Info("import complete",
		"dispo", report.DispoCount,
		"time", report.TimeCount,
		"merged", report.MergeCount,
		"success", report.Success)

	return &Result{
		Success:   report.Success,
		Movements: rec.Movements(),
		Logs:      logs,
	}, nil
}

func isWorkbook(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xls")
}

func (i *Importer) parseTime(data []byte, filename string, cfg *models.AppConfig) ([]parser.TimeEntry, error) {
	if isWorkbook(filename) {
		entries, err := i.parser.ParseTimesheetXLS(data, cfg.Timesheet)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time workbook: %w", err)
		}
		return entries, nil
	}
	return i.parser.ParseTimesheet(parser.Lines(data), cfg.Timesheet), nil
}
