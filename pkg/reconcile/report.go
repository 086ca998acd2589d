package reconcile

import "fmt"

// keySampleSize bounds the key dump emitted when nothing matched.
const keySampleSize = 3

// Report summarizes one reconciliation pass for the caller's UI or log.
type Report struct {
	DispoCount int
	TimeCount  int
	MergeCount int
	Success    bool
	Lines      []string
}

// Report evaluates the pass and renders the ordered diagnostic lines. When
// both files parsed entries but not a single key matched, it dumps sample
// keys from both sides so date and id formatting mismatches are visible at
// a glance.
//
// Success is deliberately permissive: a one-sided import (only locations or
// only times) is still usable output. Only the combination "both sides
// parsed, zero matches" is reported as failure.
func (r *Reconciler) Report() *Report {
	rep := &Report{
		DispoCount: r.dispoCount,
		TimeCount:  r.timeCount,
		MergeCount: r.mergeCount,
	}
	add := func(format string, args ...any) {
		rep.Lines = append(rep.Lines, fmt.Sprintf(format, args...))
	}

	add("dispo entries recognized: %d", r.dispoCount)
	add("time entries recognized: %d", r.timeCount)

	switch {
	case r.dispoCount > 0 && r.timeCount > 0 && r.mergeCount == 0:
		add("ERROR: 0 matches between dispo and time data")
		add("dispo keys (sample):")
		for _, k := range sample(r.dispoKeys) {
			add(" - %q", k)
		}
		add("time keys (sample):")
		for _, k := range sample(r.timeKeys) {
			add(" - %q", k)
		}
		add("hint: check date format (01.01. vs 1.1.) and employee id")
	case r.mergeCount > 0:
		add("OK: %d records merged from both files", r.mergeCount)
		rep.Success = true
	case r.dispoCount > 0 || r.timeCount > 0:
		add("note: entries from one source only, nothing to match")
		rep.Success = true
	default:
		add("warning: no data recognized in either file")
	}

	return rep
}

func sample(keys []string) []string {
	if len(keys) > keySampleSize {
		return keys[:keySampleSize]
	}
	return keys
}
