// Package rollup computes per-project and portfolio-wide views over a
// dataset snapshot. Every function here is a pure read of the snapshot.
package rollup

import (
	"math"
	"sort"
	"strings"

	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/status"
)

// StatusFilter narrows a project's records before the status breakdown.
// Empty fields match everything; DevName matches as a substring of the
// FSD / Development Name column.
type StatusFilter struct {
	Sprint     string
	Stage      string
	Complexity string
	DevName    string
}

func (f StatusFilter) matches(rec dataset.Record) bool {
	if f.Sprint != "" && rec.Sprint != f.Sprint {
		return false
	}
	if f.Stage != "" && rec.Stage != f.Stage {
		return false
	}
	if f.Complexity != "" && rec.Complexity != f.Complexity {
		return false
	}
	if f.DevName != "" && !strings.Contains(rec.DevName, f.DevName) {
		return false
	}
	return true
}

// PhaseBreakdown is the bucket percentage split of one phase.
type PhaseBreakdown struct {
	Phase      status.Phase          `json:"phase"`
	Completed  float64               `json:"completed_pct"`
	InProgress float64               `json:"in_progress_pct"`
	Pending    float64               `json:"pending_pct"`
	OnHold     float64               `json:"on_hold_pct"`
	Counts     map[status.Bucket]int `json:"counts"`
}

// ProjectNames returns the lexicographically sorted set of project names
// present in the snapshot.
func ProjectNames(snap *dataset.Snapshot) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range snap.Records {
		if rec.ProjectName == "" || seen[rec.ProjectName] {
			continue
		}
		seen[rec.ProjectName] = true
		names = append(names, rec.ProjectName)
	}
	sort.Strings(names)
	return names
}

// StatusTable computes the per-phase bucket percentages for one project
// after applying the filter. A zero-record result is valid: every
// percentage is 0, no error.
func StatusTable(snap *dataset.Snapshot, project string, filter StatusFilter) []PhaseBreakdown {
	var records []dataset.Record
	for _, rec := range snap.ProjectRecords(project) {
		if filter.matches(rec) {
			records = append(records, rec)
		}
	}

	total := len(records)
	out := make([]PhaseBreakdown, 0, len(status.Phases))
	for _, phase := range status.Phases {
		counts := status.Count(records, phase)
		out = append(out, PhaseBreakdown{
			Phase:      phase,
			Completed:  pct(counts[status.Completed], total),
			InProgress: pct(counts[status.InProgress], total),
			Pending:    pct(counts[status.Pending], total),
			OnHold:     pct(counts[status.OnHold], total),
			Counts:     counts,
		})
	}
	return out
}

// pct is count/total as a percentage rounded to 1 decimal; 0 when the
// denominator is 0.
func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
