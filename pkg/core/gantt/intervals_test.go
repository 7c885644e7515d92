package gantt

import (
	"reflect"
	"testing"
	"time"

	"delivery_insights/pkg/core/dataset"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func snapshot(records ...dataset.Record) *dataset.Snapshot {
	return &dataset.Snapshot{
		Generation: uuid.New(),
		LoadedAt:   time.Now(),
		Records:    records,
	}
}

func TestDeriveIntervalsDevTrackOnly(t *testing.T) {
	// Dev planned pair set, no ABAP/PI dates: exactly one Dev interval.
	snap := snapshot(dataset.Record{
		ProjectName:        "Alpha",
		DevelopmentID:      "D-001",
		DevPlannedStart:    date(2024, 1, 8),
		DevPlannedDelivery: date(2024, 2, 16),
	})

	intervals := DeriveIntervals(snap, "Alpha", Filter{})

	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(intervals))
	}
	iv := intervals[0]
	if iv.Track != TrackDevelopment {
		t.Errorf("expected Dev track, got %s", iv.Track)
	}
	if iv.Label != "Dev: D-001" {
		t.Errorf("unexpected label %q", iv.Label)
	}
	if !iv.Start.Equal(*date(2024, 1, 8)) || !iv.End.Equal(*date(2024, 2, 16)) {
		t.Errorf("unexpected range %v - %v", iv.Start, iv.End)
	}
}

func TestDeriveIntervalsAllTracks(t *testing.T) {
	// ABAP and PI both anchor on the Dev actual start.
	snap := snapshot(dataset.Record{
		ProjectName:         "Alpha",
		DevelopmentID:       "D-002",
		DevPlannedStart:     date(2024, 1, 8),
		DevPlannedDelivery:  date(2024, 2, 16),
		DevActualStart:      date(2024, 1, 10),
		ABAPPlannedDelivery: date(2024, 3, 1),
		PIPlannedDelivery:   date(2024, 3, 15),
	})

	intervals := DeriveIntervals(snap, "Alpha", Filter{})

	if len(intervals) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(intervals))
	}
	if intervals[1].Track != TrackABAP || !intervals[1].Start.Equal(*date(2024, 1, 10)) {
		t.Errorf("ABAP interval wrong: %+v", intervals[1])
	}
	if intervals[2].Track != TrackPI || !intervals[2].End.Equal(*date(2024, 3, 15)) {
		t.Errorf("PI interval wrong: %+v", intervals[2])
	}
}

func TestDeriveIntervalsIncompletePairsSkipped(t *testing.T) {
	// Start without end, end without start: nothing emitted, no error.
	snap := snapshot(
		dataset.Record{ProjectName: "Alpha", DevPlannedStart: date(2024, 1, 8)},
		dataset.Record{ProjectName: "Alpha", ABAPPlannedDelivery: date(2024, 3, 1)},
	)

	if got := DeriveIntervals(snap, "Alpha", Filter{}); len(got) != 0 {
		t.Errorf("expected no intervals, got %v", got)
	}
}

func TestDeriveIntervalsUnknownID(t *testing.T) {
	snap := snapshot(dataset.Record{
		ProjectName:        "Alpha",
		DevPlannedStart:    date(2024, 1, 8),
		DevPlannedDelivery: date(2024, 2, 16),
	})

	intervals := DeriveIntervals(snap, "Alpha", Filter{})
	if len(intervals) != 1 || intervals[0].Label != "Dev: Unknown" {
		t.Errorf("expected 'Dev: Unknown' label, got %v", intervals)
	}
}

func TestDeriveIntervalsFilters(t *testing.T) {
	snap := snapshot(
		dataset.Record{ProjectName: "Alpha", Sprint: "S1", DevLead: "Priya", DevPlannedStart: date(2024, 1, 8), DevPlannedDelivery: date(2024, 2, 16)},
		dataset.Record{ProjectName: "Alpha", Sprint: "S2", DevLead: "Omar", DevPlannedStart: date(2024, 2, 1), DevPlannedDelivery: date(2024, 3, 1)},
	)

	if got := DeriveIntervals(snap, "Alpha", Filter{Sprint: "S1"}); len(got) != 1 {
		t.Errorf("sprint filter: expected 1 interval, got %d", len(got))
	}
	if got := DeriveIntervals(snap, "Alpha", Filter{DevLead: "Omar"}); len(got) != 1 {
		t.Errorf("lead filter: expected 1 interval, got %d", len(got))
	}
	if got := DeriveIntervals(snap, "Beta", Filter{}); len(got) != 0 {
		t.Errorf("other project: expected empty result, got %d", len(got))
	}
}

func TestDeriveIntervalsIdempotent(t *testing.T) {
	snap := snapshot(
		dataset.Record{ProjectName: "Alpha", DevelopmentID: "D-001", DevPlannedStart: date(2024, 1, 8), DevPlannedDelivery: date(2024, 2, 16)},
		dataset.Record{ProjectName: "Alpha", DevelopmentID: "D-002", DevActualStart: date(2024, 1, 10), ABAPPlannedDelivery: date(2024, 3, 1)},
	)

	first := DeriveIntervals(snap, "Alpha", Filter{})
	second := DeriveIntervals(snap, "Alpha", Filter{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("derivation not idempotent:\n%v\n%v", first, second)
	}
}
