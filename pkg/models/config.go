package models

import "fmt"

// ExpenseRule maps a minimum net duration to a reimbursement amount. Among
// rules whose threshold is not above the computed duration, the highest
// threshold wins, so thresholds must be unique for the result to be
// deterministic.
type ExpenseRule struct {
	HoursThreshold float64 `json:"hoursThreshold" yaml:"hoursThreshold" mapstructure:"hoursThreshold"`
	Amount         float64 `json:"amount" yaml:"amount" mapstructure:"amount"`
}

// TimesheetLayout names the columns of the semicolon time export. The header
// row is recognized when its first column equals HeaderLabel; the remaining
// fields are looked up by name from that row.
type TimesheetLayout struct {
	HeaderLabel string `json:"headerLabel" yaml:"headerLabel" mapstructure:"headerLabel"`
	DateColumn  string `json:"dateColumn" yaml:"dateColumn" mapstructure:"dateColumn"`
	InColumn    string `json:"inColumn" yaml:"inColumn" mapstructure:"inColumn"`
	OutColumn   string `json:"outColumn" yaml:"outColumn" mapstructure:"outColumn"`
}

// AppConfig drives the calculation engine and the time parser. It is
// immutable during one reconciliation pass.
type AppConfig struct {
	AddStartMins int             `json:"addStartMins" yaml:"addStartMins" mapstructure:"addStartMins"`
	SubEndMins   int             `json:"subEndMins" yaml:"subEndMins" mapstructure:"subEndMins"`
	Rules        []ExpenseRule   `json:"rules" yaml:"rules" mapstructure:"rules"`
	Timesheet    TimesheetLayout `json:"timesheet" yaml:"timesheet" mapstructure:"timesheet"`
}

// DefaultTimesheetLayout matches the dispatch system's Saldenliste export.
func DefaultTimesheetLayout() TimesheetLayout {
	return TimesheetLayout{
		HeaderLabel: "Personalnummer",
		DateColumn:  "Datum",
		InColumn:    "Kommt",
		OutColumn:   "Geht",
	}
}

// Validate rejects configurations that would make amounts nondeterministic
// or corrections nonsensical.
func (c *AppConfig) Validate() error {
	if c.AddStartMins < 0 || c.SubEndMins < 0 {
		return fmt.Errorf("correction offsets must not be negative")
	}
	seen := make(map[float64]bool, len(c.Rules))
	for _, r := range c.Rules {
		if r.HoursThreshold < 0 {
			return fmt.Errorf("rule threshold %v is negative", r.HoursThreshold)
		}
		if seen[r.HoursThreshold] {
			return fmt.Errorf("duplicate rule threshold %v", r.HoursThreshold)
		}
		seen[r.HoursThreshold] = true
	}
	return nil
}

// ZeroCorrections returns a copy with both offsets cleared. Manual edits are
// recalculated with this variant so typed-in corrected times are taken
// literally.
func (c *AppConfig) ZeroCorrections() *AppConfig {
	out := *c
	out.AddStartMins = 0
	out.SubEndMins = 0
	return &out
}
