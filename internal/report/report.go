// Package report renders and writes the per-run Markdown summary.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joescharf/codereview/internal/models"
)

// DefaultPath is where the summary report is written, relative to the
// working directory. Overwritten on every run.
const DefaultPath = "review_summary.md"

// Generate renders the run summary: totals, counts by severity, and counts
// by category sorted by descending count (ties broken by name so output is
// deterministic).
func Generate(issues []models.Issue, rt models.ReviewType, runID string) string {
	bySeverity := map[models.Severity]int{}
	byCategory := map[string]int{}
	for _, issue := range issues {
		bySeverity[issue.Severity]++
		cat := issue.Category
		if cat == "" {
			cat = "general"
		}
		byCategory[cat]++
	}

	var sb strings.Builder
	sb.WriteString("# Claude Code Review Report\n\n")
	fmt.Fprintf(&sb, "**Review Type**: %s\n", rt)
	if runID != "" {
		fmt.Fprintf(&sb, "**Run ID**: %s\n", runID)
	}
	fmt.Fprintf(&sb, "**Total Issues Found**: %d\n\n", len(issues))

	sb.WriteString("## Summary by Severity\n")
	fmt.Fprintf(&sb, "- Critical: %d\n", bySeverity[models.SeverityCritical])
	fmt.Fprintf(&sb, "- High: %d\n", bySeverity[models.SeverityHigh])
	fmt.Fprintf(&sb, "- Medium: %d\n", bySeverity[models.SeverityMedium])
	fmt.Fprintf(&sb, "- Low: %d\n", bySeverity[models.SeverityLow])

	sb.WriteString("\n## Summary by Category\n")
	type catCount struct {
		name  string
		count int
	}
	cats := make([]catCount, 0, len(byCategory))
	for name, count := range byCategory {
		cats = append(cats, catCount{name, count})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].name < cats[j].name
	})
	for _, c := range cats {
		fmt.Fprintf(&sb, "- %s: %d\n", titleCase(c.name), c.count)
	}

	return sb.String()
}

// Write writes content to path, replacing any previous report.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
