package reconcile

// Package reconcile merges disposition and time entries with previously
// persisted movements into one table keyed by employee+date. It is
// intentionally isolated from file handling and HTTP so that the CLI, the
// server and tests can reuse the same data-model.

import (
	"github.com/mwinkler/spesen/pkg/calc"
	"github.com/mwinkler/spesen/pkg/models"
	"github.com/mwinkler/spesen/pkg/parser"
)

// Reconciler owns a key→record table for the duration of one import pass.
// Seed it, apply both parses in any order, then take the movements; a
// Reconciler is not safe for concurrent use — callers running imports in
// parallel use one Reconciler each.
type Reconciler struct {
	records map[string]*models.Movement
	order   []string

	dispoKeys []string
	timeKeys  []string

	dispoCount int
	timeCount  int
	mergeCount int
}

func New() *Reconciler {
	return &Reconciler{
		records: make(map[string]*models.Movement),
	}
}

// Seed loads previously persisted movements so re-imports update records in
// place instead of duplicating them. The input records are copied, never
// mutated.
func (r *Reconciler) Seed(existing []*models.Movement) {
	for _, m := range existing {
		cp := *m
		r.put(&cp)
	}
}

func (r *Reconciler) put(m *models.Movement) {
	key := m.Key()
	if _, ok := r.records[key]; !ok {
		r.order = append(r.order, key)
	}
	r.records[key] = m
}

// lookup returns the record for a key, creating it on first sight. Entries
// must arrive with normalized components; a mismatched normalization shows
// up as a silent merge miss, which is exactly what the key dump in the
// report exists to diagnose.
func (r *Reconciler) lookup(employeeID, date string) *models.Movement {
	key := employeeID + models.KeySeparator + date
	if m, ok := r.records[key]; ok {
		return m
	}
	m := models.NewMovement(employeeID, date)
	r.put(m)
	return m
}

// ApplyDispo merges location assignments into the table.
func (r *Reconciler) ApplyDispo(entries []parser.DispoEntry) {
	for _, e := range entries {
		m := r.lookup(e.EmployeeID, e.Date)
		m.MergeLocation(e.Location)
		r.dispoKeys = appendKey(r.dispoKeys, m.Key())
		r.dispoCount++
	}
}

// ApplyTime stores raw clock pairs and runs the calculation engine on every
// record not locked by a manual edit.
func (r *Reconciler) ApplyTime(entries []parser.TimeEntry, cfg *models.AppConfig) {
	for _, e := range entries {
		key := e.EmployeeID + models.KeySeparator + e.Date
		if existing, found := r.records[key]; found && existing.Location != "" {
			r.mergeCount++
		}

		m := r.lookup(e.EmployeeID, e.Date)
		m.StartTimeRaw = e.Start
		m.EndTimeRaw = e.End
		calc.Apply(m, cfg)

		r.timeKeys = appendKey(r.timeKeys, key)
		r.timeCount++
	}
}

// Movements returns the table values in insertion order. The Reconciler is
// done after this call; ownership of the records moves to the caller.
func (r *Reconciler) Movements() []*models.Movement {
	out := make([]*models.Movement, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.records[key])
	}
	return out
}

func appendKey(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}
