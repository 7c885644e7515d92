package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ErrNotTabular is returned when a source file cannot be parsed as a
// table by any supported format.
var ErrNotTabular = errors.New("source is not tabular data")

// ErrColumnMissing is returned when a column required for classification
// or filtering is absent after normalization.
var ErrColumnMissing = errors.New("required column missing")

// Load reads the tracking sheet at path and builds a fresh Snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	snap, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return snap, nil
}

// LoadReader reads a whole uploaded file and builds a fresh Snapshot.
func LoadReader(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses raw file content into a Snapshot. It tries XLSX
// first, then falls back to an HTML table: SAP ALV exports ship ".xls"
// files that are really HTML. Normalization and binding run exactly once
// here; the returned snapshot is never mutated afterwards.
func LoadBytes(data []byte) (*Snapshot, error) {
	table, xlsxErr := parseWorkbook(data)
	if xlsxErr != nil {
		var htmlErr error
		table, htmlErr = parseHTMLTable(data)
		if htmlErr != nil {
			return nil, fmt.Errorf("%w: xlsx: %v; html: %v", ErrNotTabular, xlsxErr, htmlErr)
		}
	}

	return NewSnapshot(table)
}

// NewSnapshot normalizes the raw table's header and binds its rows into
// typed records. Rows without a project name are excluded up front: they
// can never participate in any aggregation.
func NewSnapshot(table *RawTable) (*Snapshot, error) {
	norm := NormalizeColumns(table)

	if norm.ColumnIndex(ColProjectName) < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, ColProjectName)
	}

	snap := &Snapshot{
		Generation: uuid.New(),
		LoadedAt:   time.Now(),
		Columns:    append([]string(nil), norm.Columns...),
	}

	for _, row := range norm.Rows {
		rec := bindRecord(norm.Columns, row)
		if rec.ProjectName == "" {
			continue
		}
		snap.Records = append(snap.Records, rec)
	}

	return snap, nil
}

func bindRecord(columns []string, row []string) Record {
	cell := func(label string) string {
		for i, c := range columns {
			if c == label && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}
	date := func(label string) *time.Time {
		return parseDate(cell(label))
	}

	return Record{
		ProjectName:   cell(ColProjectName),
		DevelopmentID: cell(ColDevelopmentID),
		DevName:       cell(ColDevName),
		Sprint:        cell(ColSprint),
		Stage:         cell(ColStage),
		Complexity:    cell(ColComplexity),
		Priority:      cell(ColPriority),
		DevType:       cell(ColDevType),
		ProcessArea:   cell(ColProcessArea),
		DevLead:       cell(ColDevLead),

		FSDReceived:    date(ColFSDReceived),
		FSDWalkthrough: date(ColFSDWalkthrough),

		DevPlannedStart:    date(ColDevPlannedStart),
		DevPlannedDelivery: date(ColDevPlannedDelivery),
		DevActualStart:     date(ColDevActualStart),
		DevActualDelivery:  date(ColDevActualDelivery),

		ABAPPlannedDelivery: date(ColABAPPlannedDelivery),
		ABAPActualDelivery:  date(ColABAPActualDelivery),

		PIPlannedDelivery: date(ColPIPlannedDelivery),
		PIActualDelivery:  date(ColPIActualDelivery),

		OnHoldReason:    cell(ColOnHoldReason),
		FUTStatus:       cell(ColFUTStatus),
		FUTOnHoldReason: cell(ColFUTOnHoldReason),
	}
}

// parseWorkbook reads the first worksheet of an XLSX file. The first row
// is the header; short rows are padded by cell() returning "".
func parseWorkbook(data []byte) (*RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return &RawTable{Columns: rows[0], Rows: rows[1:]}, nil
}

// parseHTMLTable extracts the first <table> from an HTML document.
func parseHTMLTable(data []byte) (*RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no <table> element found")
	}

	var out RawTable
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if out.Columns == nil {
			out.Columns = cells
			return
		}
		out.Rows = append(out.Rows, cells)
	})

	if out.Columns == nil {
		return nil, fmt.Errorf("table has no rows")
	}
	return &out, nil
}

// dateLayouts covers the formats seen across tracker exports. excelize
// renders styled date cells with m-d-y ordering by default.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system, already adjusted for
// the Lotus leap-year bug.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate converts a cell string into a date. Blank cells yield nil;
// a bare number is treated as an Excel serial date.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}

	return nil
}
