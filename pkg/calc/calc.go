// Package calc turns raw clock stamps into corrected times, a net duration
// and a reimbursement amount. It is pure: no I/O, no state, so the importer,
// the recalc command and the manual-edit path all share it.
package calc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mwinkler/spesen/pkg/models"
)

const minutesPerDay = 24 * 60

// Result carries the outputs of one calculation.
type Result struct {
	StartCorr string
	EndCorr   string
	Duration  float64
	Amount    float64
}

// ParseClock converts "HH:MM" to minutes since midnight. Empty or malformed
// input yields 0, mirroring how the exports treat missing stamps.
func ParseClock(s string) int {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return h*60 + m
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM",
// wrapping at 24 hours for display.
func FormatClock(minutes int) string {
	m := minutes
	if m < 0 {
		m += minutesPerDay
	}
	h := (m / 60) % 24
	return fmt.Sprintf("%02d:%02d", h, m%60)
}

// Calculate applies the configured correction offsets to a raw clock pair
// and derives the net duration and reimbursement amount.
//
// When the raw end is before the raw start the shift crossed midnight and a
// day is added to the end before the diff. Negative corrected intervals are
// clamped to zero, never reported as errors. Rounding is half-up to two
// decimals.
func Calculate(rawStart, rawEnd string, cfg *models.AppConfig) Result {
	startMins := ParseClock(rawStart)
	endMins := ParseClock(rawEnd)

	startCorrMins := startMins + cfg.AddStartMins
	endCorrMins := endMins - cfg.SubEndMins

	if endMins < startMins {
		endCorrMins += minutesPerDay
	}

	durationMins := endCorrMins - startCorrMins
	if durationMins < 0 {
		durationMins = 0
	}
	duration := decimal.NewFromInt(int64(durationMins)).
		Div(decimal.NewFromInt(60)).
		Round(2)

	return Result{
		StartCorr: FormatClock(startCorrMins),
		EndCorr:   FormatClock(endCorrMins),
		Duration:  duration.InexactFloat64(),
		Amount:    amountFor(duration, cfg.Rules),
	}
}

// amountFor picks the highest threshold not above the duration.
func amountFor(duration decimal.Decimal, rules []models.ExpenseRule) float64 {
	sorted := make([]models.ExpenseRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].HoursThreshold > sorted[j].HoursThreshold
	})
	for _, r := range sorted {
		if decimal.NewFromFloat(r.HoursThreshold).LessThanOrEqual(duration) {
			return r.Amount
		}
	}
	return 0
}

// Apply runs Calculate for the movement's raw times and stores the outputs.
// Records flagged manual are left untouched.
func Apply(m *models.Movement, cfg *models.AppConfig) {
	if m.IsManual {
		return
	}
	res := Calculate(m.StartTimeRaw, m.EndTimeRaw, cfg)
	m.StartTimeCorr = res.StartCorr
	m.EndTimeCorr = res.EndCorr
	m.DurationNetto = res.Duration
	m.Amount = res.Amount
}

// Manual recalculates a record from user-typed corrected times. The
// corrections are taken literally (zero offsets) and the record is locked
// against future batch recalculation.
func Manual(m *models.Movement, startCorr, endCorr string, cfg *models.AppConfig) {
	res := Calculate(startCorr, endCorr, cfg.ZeroCorrections())
	m.StartTimeCorr = res.StartCorr
	m.EndTimeCorr = res.EndCorr
	m.DurationNetto = res.Duration
	m.Amount = res.Amount
	m.IsManual = true
}

// RecalculateAll reapplies the configuration to every non-manual movement
// that carries a raw clock pair.
func RecalculateAll(movements []*models.Movement, cfg *models.AppConfig) {
	for _, m := range movements {
		if !m.HasTimes() {
			continue
		}
		Apply(m, cfg)
	}
}
