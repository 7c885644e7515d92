// Package gantt derives timeline intervals from a dataset snapshot.
package gantt

import (
	"fmt"
	"time"

	"delivery_insights/pkg/core/dataset"
)

// Track names the swimlane an interval belongs to.
type Track string

const (
	TrackDevelopment Track = "Dev"
	TrackABAP        Track = "ABAP"
	TrackPI          Track = "PI"
)

// Interval is one Gantt bar: a labeled date range on a track.
type Interval struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Track Track     `json:"track"`
}

// Filter narrows the project's records before derivation. Empty fields
// match everything; all matches are exact.
type Filter struct {
	Sprint  string
	Stage   string
	DevLead string
}

func (f Filter) matches(rec dataset.Record) bool {
	if f.Sprint != "" && rec.Sprint != f.Sprint {
		return false
	}
	if f.Stage != "" && rec.Stage != f.Stage {
		return false
	}
	if f.DevLead != "" && rec.DevLead != f.DevLead {
		return false
	}
	return true
}

// DeriveIntervals emits up to three intervals per surviving record, one
// per track, each only when both endpoints are present:
//
//	Dev:  planned start  -> planned delivery
//	ABAP: actual dev start -> ABAP planned delivery
//	PI:   actual dev start -> PI planned delivery
//
// ABAP and PI reuse the Development actual start because the sheet has
// no start column for them. Records contributing no complete pair are
// silently skipped; an empty result is valid. Output follows source
// iteration order, so identical inputs always yield identical output.
func DeriveIntervals(snap *dataset.Snapshot, project string, filter Filter) []Interval {
	var out []Interval
	for _, rec := range snap.ProjectRecords(project) {
		if !filter.matches(rec) {
			continue
		}

		if rec.DevPlannedStart != nil && rec.DevPlannedDelivery != nil {
			out = append(out, interval(TrackDevelopment, rec, *rec.DevPlannedStart, *rec.DevPlannedDelivery))
		}
		if rec.DevActualStart != nil && rec.ABAPPlannedDelivery != nil {
			out = append(out, interval(TrackABAP, rec, *rec.DevActualStart, *rec.ABAPPlannedDelivery))
		}
		if rec.DevActualStart != nil && rec.PIPlannedDelivery != nil {
			out = append(out, interval(TrackPI, rec, *rec.DevActualStart, *rec.PIPlannedDelivery))
		}
	}
	return out
}

func interval(track Track, rec dataset.Record, start, end time.Time) Interval {
	id := rec.DevelopmentID
	if id == "" {
		id = "Unknown"
	}
	return Interval{
		Label: fmt.Sprintf("%s: %s", track, id),
		Start: start,
		End:   end,
		Track: track,
	}
}
