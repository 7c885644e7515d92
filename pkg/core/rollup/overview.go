package rollup

import (
	"fmt"
	"sort"
	"strings"

	"delivery_insights/pkg/core/dataset"
)

// Sentinels for projects whose optional display columns are empty.
const (
	NotAssigned  = "Not assigned"
	NotSpecified = "Not specified"
	NotStarted   = "Not started"
)

// OverviewRow is one landing-page line per project.
type OverviewRow struct {
	ProjectName  string `json:"project_name"`
	Stages       string `json:"stages"`
	ProcessAreas string `json:"process_areas"`
	DevLeads     string `json:"dev_leads"`
	FUTStatus    string `json:"fut_status"`
	Total        int    `json:"total_developments"`
}

// Overview builds one row per project: stage and FUT status
// distributions rendered as "value: count" lists, plus the distinct
// process areas and dev leads. Empty optional columns degrade to
// sentinel strings instead of failing.
func Overview(snap *dataset.Snapshot) []OverviewRow {
	var rows []OverviewRow
	for _, project := range ProjectNames(snap) {
		records := snap.ProjectRecords(project)

		stages := formatDistribution(countValues(records, func(r dataset.Record) string { return r.Stage }))
		futs := formatDistribution(countValues(records, func(r dataset.Record) string { return r.FUTStatus }))
		if futs == "" {
			futs = NotStarted
		}

		areas := distinctValues(records, func(r dataset.Record) string { return r.ProcessArea })
		areasStr := strings.Join(areas, ", ")
		if areasStr == "" {
			areasStr = NotSpecified
		}

		leads := distinctValues(records, func(r dataset.Record) string { return r.DevLead })
		leadsStr := strings.Join(leads, ", ")
		if leadsStr == "" {
			leadsStr = NotAssigned
		}

		rows = append(rows, OverviewRow{
			ProjectName:  project,
			Stages:       stages,
			ProcessAreas: areasStr,
			DevLeads:     leadsStr,
			FUTStatus:    futs,
			Total:        len(records),
		})
	}
	return rows
}

// countValues tallies non-blank values of one column over a record set.
func countValues(records []dataset.Record, get func(dataset.Record) string) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		if v := get(rec); v != "" {
			counts[v]++
		}
	}
	return counts
}

// distinctValues returns the unique non-blank values in first-seen order.
func distinctValues(records []dataset.Record, get func(dataset.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		v := get(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// formatDistribution renders counts as "value: count" joined with ", ",
// ordered by count descending then value ascending so output is stable.
func formatDistribution(counts map[string]int) string {
	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, entry{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: %d", e.value, e.count))
	}
	return strings.Join(parts, ", ")
}
