package rollup

import (
	"fmt"

	"delivery_insights/pkg/core/dataset"
)

// Checkpoint labels of the milestone table, in presentation order.
var Checkpoints = []string{
	"FSD Received",
	"FSD Walkthrough",
	"Dev Started",
	"Dev Completed",
	"ABAP Completed",
	"PI Completed",
	"FUT Completed",
}

// checkpointPredicates maps each checkpoint to its presence/equality
// test on a record.
var checkpointPredicates = map[string]func(dataset.Record) bool{
	"FSD Received":    func(r dataset.Record) bool { return r.FSDReceived != nil },
	"FSD Walkthrough": func(r dataset.Record) bool { return r.FSDWalkthrough != nil },
	"Dev Started":     func(r dataset.Record) bool { return r.DevActualStart != nil },
	"Dev Completed":   func(r dataset.Record) bool { return r.DevActualDelivery != nil },
	"ABAP Completed":  func(r dataset.Record) bool { return r.ABAPActualDelivery != nil },
	"PI Completed":    func(r dataset.Record) bool { return r.PIActualDelivery != nil },
	"FUT Completed":   func(r dataset.Record) bool { return r.FUTStatus == dataset.FUTCompleted },
}

// MilestoneCell is one checkpoint of one project: the raw numbers plus
// the "count/total (pct%)" display string. Percent stays a parallel
// numeric field for downstream coloring and sorting; it is never parsed
// back out of the display string.
type MilestoneCell struct {
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
	Display string  `json:"display"`
}

// MilestoneRow is the milestone table line for one project, keyed by
// checkpoint label.
type MilestoneRow struct {
	ProjectName string                   `json:"project_name"`
	Total       int                      `json:"total"`
	Checkpoints map[string]MilestoneCell `json:"checkpoints"`
}

// Milestones builds the seven-checkpoint completion table, one row per
// project.
func Milestones(snap *dataset.Snapshot) []MilestoneRow {
	var rows []MilestoneRow
	for _, project := range ProjectNames(snap) {
		records := snap.ProjectRecords(project)
		total := len(records)

		row := MilestoneRow{
			ProjectName: project,
			Total:       total,
			Checkpoints: make(map[string]MilestoneCell, len(Checkpoints)),
		}
		for _, cp := range Checkpoints {
			pred := checkpointPredicates[cp]
			count := 0
			for _, rec := range records {
				if pred(rec) {
					count++
				}
			}
			p := pct(count, total)
			row.Checkpoints[cp] = MilestoneCell{
				Count:   count,
				Total:   total,
				Percent: p,
				Display: fmt.Sprintf("%d/%d (%.1f%%)", count, total, p),
			}
		}
		rows = append(rows, row)
	}
	return rows
}
