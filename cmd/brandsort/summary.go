package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"brandsort/internal/api"
	"brandsort/internal/organizer"
)

// statsRows lists every counter, zero or not, in a stable order.
func statsRows(stats api.RunStats) [][]string {
	counters := []struct {
		label string
		value int
	}{
		{"Files moved", stats.FilesMoved},
		{"Folders moved", stats.FoldersMoved},
		{"Folders merged", stats.FoldersMerged},
		{"Folders flattened", stats.FoldersFlattened},
		{"Folders created", stats.FoldersCreated},
		{"Folders removed", stats.FoldersRemoved},
		{"Duplicates quarantined", stats.Duplicates},
		{"Files replaced", stats.Replaced},
		{"Name conflicts", stats.Conflicts},
		{"Files skipped", stats.Skipped},
		{"Errors", stats.Errors},
	}
	rows := make([][]string, 0, len(counters))
	for _, c := range counters {
		rows = append(rows, []string{c.label, strconv.Itoa(c.value)})
	}
	return rows
}

func renderStatsTable(stats api.RunStats) string {
	return renderTable([]column{{title: "Result"}, {title: "Count", numeric: true}}, statsRows(stats))
}

func renderRunSummary(runID, logPath string, result organizer.Result) string {
	var b strings.Builder
	outcome := "completed"
	if !result.Success {
		outcome = "FAILED"
	}
	fmt.Fprintf(&b, "Organize %s: %s\n", outcome, result.Root)
	fmt.Fprintf(&b, "Run ID:   %s\n", runID)
	if !result.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Elapsed:  %s\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "Log file: %s\n", logPath)
	if result.Err != nil {
		fmt.Fprintf(&b, "Error:    %v\n", result.Err)
	}
	b.WriteString(renderStatsTable(api.FromStats(result.Stats)))
	return b.String()
}
