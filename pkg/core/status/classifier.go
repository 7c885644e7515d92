// Package status classifies a development item into exactly one delivery
// bucket per phase.
package status

import (
	"delivery_insights/pkg/core/dataset"
)

// Phase is one lifecycle stage of a development item.
type Phase string

const (
	PhaseDevelopment Phase = "Development"
	PhaseABAP        Phase = "ABAP"
	PhasePI          Phase = "PI"
	PhaseFUT         Phase = "FUT"
)

// Phases lists the classifiable phases in presentation order.
var Phases = []Phase{PhaseDevelopment, PhaseABAP, PhasePI, PhaseFUT}

// Bucket is the classification outcome for a (record, phase) pair.
type Bucket string

const (
	Completed  Bucket = "Completed"
	InProgress Bucket = "In Progress"
	Pending    Bucket = "Pending"
	OnHold     Bucket = "On Hold"
)

// Buckets lists all buckets in presentation order.
var Buckets = []Bucket{Completed, InProgress, Pending, OnHold}

// Classify returns the bucket for one record and phase. The precedence
// is fixed and first match wins: Completed, then On Hold, then
// In Progress, then Pending as the residual. Overlapping raw signals
// (e.g. a delivered item that still carries a hold reason) are resolved
// entirely by this order.
//
// The hold reason gates Development, ABAP and PI identically; the sheet
// has no per-phase hold field. ABAP and PI also reuse the Development
// actual start as their in-progress signal, since they have no start
// column of their own.
func Classify(rec dataset.Record, phase Phase) Bucket {
	if phase == PhaseFUT {
		return classifyFUT(rec)
	}

	var delivered bool
	switch phase {
	case PhaseDevelopment:
		delivered = rec.DevActualDelivery != nil
	case PhaseABAP:
		delivered = rec.ABAPActualDelivery != nil
	case PhasePI:
		delivered = rec.PIActualDelivery != nil
	default:
		return Pending
	}

	switch {
	case delivered:
		return Completed
	case rec.OnHoldReason != "":
		return OnHold
	case rec.DevActualStart != nil:
		return InProgress
	default:
		return Pending
	}
}

func classifyFUT(rec dataset.Record) Bucket {
	switch {
	case rec.FUTStatus == dataset.FUTCompleted:
		return Completed
	case rec.FUTOnHoldReason != "":
		return OnHold
	case rec.FUTStatus == dataset.FUTInProgress:
		return InProgress
	default:
		return Pending
	}
}

// Count tallies buckets over a record set by classifying each record
// exactly once. Buckets therefore always sum to len(records); pending is
// never derived by subtraction.
func Count(records []dataset.Record, phase Phase) map[Bucket]int {
	counts := map[Bucket]int{Completed: 0, InProgress: 0, Pending: 0, OnHold: 0}
	for _, rec := range records {
		counts[Classify(rec, phase)]++
	}
	return counts
}
