package rollup

import (
	"fmt"
	"sort"

	"delivery_insights/pkg/core/dataset"
)

// Chartable columns for the per-project distribution endpoints.
const (
	ChartDevType     = "Dev Type"
	ChartStage       = "Stage"
	ChartProcessArea = "Process Area"
)

// DistributionEntry is one slice/bar of a chart input.
type DistributionEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution counts the values of one categorical column over a
// project's records, blanks skipped, ordered by count descending then
// label ascending. The presentation layer does the actual drawing.
func Distribution(snap *dataset.Snapshot, project, column string) ([]DistributionEntry, error) {
	var get func(dataset.Record) string
	switch column {
	case ChartDevType:
		get = func(r dataset.Record) string { return r.DevType }
	case ChartStage:
		get = func(r dataset.Record) string { return r.Stage }
	case ChartProcessArea:
		get = func(r dataset.Record) string { return r.ProcessArea }
	default:
		return nil, fmt.Errorf("column %q is not chartable", column)
	}

	counts := countValues(snap.ProjectRecords(project), get)
	entries := make([]DistributionEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, DistributionEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries, nil
}
