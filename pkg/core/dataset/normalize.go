package dataset

import "strings"

// NormalizeColumns standardizes header labels: every label is trimmed,
// then, if no exact "Dev Lead" column exists, the first label that
// case-insensitively contains "dev lead" is renamed to "Dev Lead".
// Remaining aliases keep their trimmed labels and are ignored by the
// binder; first by original column order wins.
//
// The input table is not mutated. Applying the function twice yields the
// same header as applying it once.
func NormalizeColumns(t *RawTable) *RawTable {
	out := t.Clone()

	for i, col := range out.Columns {
		out.Columns[i] = strings.TrimSpace(col)
	}

	if out.ColumnIndex(ColDevLead) < 0 {
		for i, col := range out.Columns {
			if strings.Contains(strings.ToLower(col), "dev lead") {
				out.Columns[i] = ColDevLead
				break
			}
		}
	}

	return out
}
