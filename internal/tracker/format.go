package tracker

import (
	"fmt"
	"strings"

	"github.com/joescharf/codereview/internal/models"
)

const titlePrefix = "[Claude Review]"

// summaryListLimit caps how many findings are listed per category in the
// summary issue body.
const summaryListLimit = 10

func issueTitle(issue models.Issue) string {
	title := issue.Title
	if title == "" {
		title = "Untitled finding"
	}
	return fmt.Sprintf("%s %s", titlePrefix, title)
}

// issueBody renders the body for an individual critical/high finding.
// Missing fields render as placeholders, never a failure.
func issueBody(issue models.Issue, rt models.ReviewType, runID string) string {
	severity := string(issue.Severity)
	if severity == "" {
		severity = "unknown"
	}
	category := issue.Category
	if category == "" {
		category = "general"
	}
	file := issue.File
	if file == "" {
		file = "N/A"
	}
	line := "N/A"
	if issue.Line > 0 {
		line = fmt.Sprintf("%d", issue.Line)
	}
	description := issue.Description
	if description == "" {
		description = "No description provided"
	}
	suggestion := issue.Suggestion
	if suggestion == "" {
		suggestion = "No suggestion provided"
	}

	var sb strings.Builder
	sb.WriteString("## 🤖 Automated Code Review Finding\n\n")
	fmt.Fprintf(&sb, "**Severity:** %s\n", strings.ToUpper(severity))
	fmt.Fprintf(&sb, "**Category:** %s\n", category)
	fmt.Fprintf(&sb, "**File:** `%s`\n", file)
	fmt.Fprintf(&sb, "**Line:** %s\n\n", line)
	sb.WriteString("### Description\n")
	sb.WriteString(description)
	sb.WriteString("\n\n### Suggested Fix\n")
	sb.WriteString(suggestion)
	sb.WriteString("\n\n---\n")
	sb.WriteString("*This issue was automatically created by Claude Code Review*\n")
	fmt.Fprintf(&sb, "*Review Type: %s*\n", rt)
	if runID != "" {
		fmt.Fprintf(&sb, "*Run ID: %s*\n", runID)
	}
	return sb.String()
}

// issueLabels derives the label set for an individual finding.
func issueLabels(issue models.Issue) []string {
	severity := string(issue.Severity)
	if severity == "" {
		severity = "unknown"
	}
	category := issue.Category
	if category == "" {
		category = "general"
	}
	return []string{
		"severity:" + severity,
		"category:" + category,
		"claude-review",
		"automated",
	}
}

func summaryTitle(issues []models.Issue) string {
	return fmt.Sprintf("%s %d Medium/Low Priority Findings", titlePrefix, len(issues))
}

// summaryBody renders the rolled-up issue for medium/low findings, grouped
// by category in first-appearance order with at most summaryListLimit
// entries per category.
func summaryBody(issues []models.Issue, runID string) string {
	var order []string
	byCategory := make(map[string][]models.Issue)
	for _, issue := range issues {
		cat := issue.Category
		if cat == "" {
			cat = "general"
		}
		if _, ok := byCategory[cat]; !ok {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], issue)
	}

	var sb strings.Builder
	sb.WriteString("## 🤖 Code Review Summary\n\n")
	fmt.Fprintf(&sb, "Found %d medium/low priority issues during automated review.\n\n", len(issues))
	sb.WriteString("### Findings by Category\n")

	for _, cat := range order {
		catIssues := byCategory[cat]
		fmt.Fprintf(&sb, "\n#### %s (%d issues)\n", titleCase(cat), len(catIssues))
		for i, issue := range catIssues {
			if i == summaryListLimit {
				break
			}
			file := issue.File
			if file == "" {
				file = "N/A"
			}
			fmt.Fprintf(&sb, "- **%s**: %s (`%s`)\n", issue.Severity, issue.Title, file)
		}
	}

	sb.WriteString("\n---\n")
	sb.WriteString("*This summary was automatically created by Claude Code Review*\n")
	sb.WriteString("*For detailed information on each issue, please run a targeted review*\n")
	if runID != "" {
		fmt.Fprintf(&sb, "*Run ID: %s*\n", runID)
	}
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
