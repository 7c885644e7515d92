package dataset

import (
	"time"

	"github.com/google/uuid"
)

// Canonical column labels of the delivery tracking sheet.
// ColFSDReceived keeps the source workbook's historical misspelling.
const (
	ColProjectName   = "Project Name"
	ColDevelopmentID = "Development ID"
	ColDevName       = "FSD / Development Name"
	ColSprint        = "Sprint"
	ColStage         = "Stage"
	ColComplexity    = "Complexity"
	ColPriority      = "Priority"
	ColDevType       = "Dev Type"
	ColProcessArea   = "Process Area"
	ColDevLead       = "Dev Lead"

	ColFSDReceived    = "FSD Recieved Date"
	ColFSDWalkthrough = "FSD Actual Walkthrough Date"

	ColDevPlannedStart    = "Dev Planned Start Date"
	ColDevPlannedDelivery = "Dev Planned Delivery Date"
	ColDevActualStart     = "Dev Actual Start Date"
	ColDevActualDelivery  = "Dev Actual Delivery Date"

	ColABAPPlannedDelivery = "ABAP Planned Delivery Date"
	ColABAPActualDelivery  = "ABAP Actual Delivery Date"

	ColPIPlannedDelivery = "PI Planned Delivery Date"
	ColPIActualDelivery  = "PI Actual Delivery Date"

	ColOnHoldReason    = "ON Hold Reason"
	ColFUTStatus       = "FUT Status"
	ColFUTOnHoldReason = "FUT On Hold Reason"
)

// FUT status values the classifier recognizes; anything else is residual.
const (
	FUTCompleted  = "Completed"
	FUTInProgress = "In Progress"
)

// RawTable is the loader output before column binding: an ordered header
// plus string cells, row-major. Empty string means an absent value.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Clone returns a deep copy so normalization can stay pure.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// ColumnIndex returns the position of the given label, or -1.
func (t *RawTable) ColumnIndex(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Record is one development item bound to typed fields. Date fields are
// nil when the source cell is blank; blank is the only "unknown".
type Record struct {
	ProjectName   string
	DevelopmentID string
	DevName       string
	Sprint        string
	Stage         string
	Complexity    string
	Priority      string
	DevType       string
	ProcessArea   string
	DevLead       string

	FSDReceived    *time.Time
	FSDWalkthrough *time.Time

	DevPlannedStart    *time.Time
	DevPlannedDelivery *time.Time
	DevActualStart     *time.Time
	DevActualDelivery  *time.Time

	ABAPPlannedDelivery *time.Time
	ABAPActualDelivery  *time.Time

	PIPlannedDelivery *time.Time
	PIActualDelivery  *time.Time

	OnHoldReason    string
	FUTStatus       string
	FUTOnHoldReason string
}

// Snapshot is the immutable session dataset. It is replaced wholesale on
// every load; Generation distinguishes one load from the next.
type Snapshot struct {
	Generation uuid.UUID
	LoadedAt   time.Time
	Columns    []string
	Records    []Record
}

// ProjectRecords returns the records belonging to one project, in source
// order.
func (s *Snapshot) ProjectRecords(project string) []Record {
	var out []Record
	for _, r := range s.Records {
		if r.ProjectName == project {
			out = append(out, r)
		}
	}
	return out
}
