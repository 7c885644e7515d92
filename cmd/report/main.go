// Command report renders a portfolio status report from a tracking
// workbook: overview, milestone completion, and per-project phase
// breakdowns, written as Markdown and HTML.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/rollup"
	"delivery_insights/pkg/core/utils"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	input := flag.String("in", "data/tracking.xlsx", "tracking workbook (xlsx or SAP HTML export)")
	outMD := flag.String("md", "report.md", "markdown output path")
	outHTML := flag.String("html", "report.html", "HTML output path (empty to skip)")
	flag.Parse()

	snap, err := dataset.Load(*input)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[DATA] %d records, %d projects (generation %s)\n",
		len(snap.Records), len(rollup.ProjectNames(snap)), snap.Generation)

	md := buildReport(snap)

	if err := os.WriteFile(*outMD, []byte(md), 0o644); err != nil {
		fmt.Printf("[FATAL] write %s: %v\n", *outMD, err)
		os.Exit(1)
	}
	fmt.Printf("[REPORT] wrote %s\n", *outMD)

	if *outHTML != "" {
		html, err := utils.RenderHTML(md)
		if err != nil {
			fmt.Printf("[FATAL] %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outHTML, []byte(html), 0o644); err != nil {
			fmt.Printf("[FATAL] write %s: %v\n", *outHTML, err)
			os.Exit(1)
		}
		fmt.Printf("[REPORT] wrote %s\n", *outHTML)
	}
}

func buildReport(snap *dataset.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Delivery Portfolio Report\n\n")

	b.WriteString("## Overview\n\n")
	b.WriteString("| Project | Developments | Stages | Process Areas | Dev Leads | FUT Status |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range rollup.Overview(snap) {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s |\n",
			row.ProjectName, row.Total, row.Stages, row.ProcessAreas, row.DevLeads, row.FUTStatus)
	}

	b.WriteString("\n## Milestones\n\n")
	b.WriteString("| Project | " + strings.Join(rollup.Checkpoints, " | ") + " |\n")
	b.WriteString("|---" + strings.Repeat("|---", len(rollup.Checkpoints)) + "|\n")
	for _, row := range rollup.Milestones(snap) {
		fmt.Fprintf(&b, "| %s ", row.ProjectName)
		for _, cp := range rollup.Checkpoints {
			fmt.Fprintf(&b, "| %s ", row.Checkpoints[cp].Display)
		}
		b.WriteString("|\n")
	}

	b.WriteString("\n## Phase Status by Project\n")
	for _, project := range rollup.ProjectNames(snap) {
		fmt.Fprintf(&b, "\n### %s\n\n", project)
		b.WriteString("| Phase | Completed % | In Progress % | Pending % | On Hold % |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, phase := range rollup.StatusTable(snap, project, rollup.StatusFilter{}) {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.1f |\n",
				phase.Phase, phase.Completed, phase.InProgress, phase.Pending, phase.OnHold)
		}
	}

	return b.String()
}
