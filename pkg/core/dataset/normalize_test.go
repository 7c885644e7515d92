package dataset

import (
	"reflect"
	"testing"
)

func TestNormalizeColumnsTrimsAndRenames(t *testing.T) {
	table := &RawTable{
		Columns: []string{" Project Name ", "Dev Lead ", "Sprint"},
		Rows:    [][]string{{"Alpha", "Priya", "S1"}},
	}

	norm := NormalizeColumns(table)

	want := []string{"Project Name", "Dev Lead", "Sprint"}
	if !reflect.DeepEqual(norm.Columns, want) {
		t.Errorf("expected columns %v, got %v", want, norm.Columns)
	}

	// Input must be untouched
	if table.Columns[0] != " Project Name " {
		t.Errorf("input table was mutated: %v", table.Columns)
	}
}

func TestNormalizeColumnsAliasSubstring(t *testing.T) {
	table := &RawTable{
		Columns: []string{"Project Name", "Assigned Dev Lead Name"},
	}

	norm := NormalizeColumns(table)

	if norm.Columns[1] != ColDevLead {
		t.Errorf("expected alias renamed to %q, got %q", ColDevLead, norm.Columns[1])
	}
}

func TestNormalizeColumnsFirstAliasWins(t *testing.T) {
	// Two aliases, no canonical column: only the first is renamed.
	table := &RawTable{
		Columns: []string{"Dev Lead (primary)", "Dev Lead (backup)"},
	}

	norm := NormalizeColumns(table)

	if norm.Columns[0] != ColDevLead {
		t.Errorf("expected first alias canonicalized, got %q", norm.Columns[0])
	}
	if norm.Columns[1] != "Dev Lead (backup)" {
		t.Errorf("expected second alias untouched, got %q", norm.Columns[1])
	}
}

func TestNormalizeColumnsKeepsExistingCanonical(t *testing.T) {
	table := &RawTable{
		Columns: []string{"Dev Lead", "Dev Lead Name"},
	}

	norm := NormalizeColumns(table)

	if norm.Columns[1] != "Dev Lead Name" {
		t.Errorf("alias should stay untouched when canonical exists, got %q", norm.Columns[1])
	}
}

func TestNormalizeColumnsIdempotent(t *testing.T) {
	table := &RawTable{
		Columns: []string{" Project Name", "dev lead col", "Stage "},
		Rows:    [][]string{{"Alpha", "Priya", "Build"}},
	}

	once := NormalizeColumns(table)
	twice := NormalizeColumns(once)

	if !reflect.DeepEqual(once.Columns, twice.Columns) {
		t.Errorf("normalize not idempotent: %v vs %v", once.Columns, twice.Columns)
	}
	if !reflect.DeepEqual(once.Rows, twice.Rows) {
		t.Errorf("rows changed on second pass")
	}
}
