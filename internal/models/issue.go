package models

// Severity ranks how urgent a review finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Issue is a single finding extracted from a model review response.
// Field names and JSON tags match the output schema the model is asked
// to produce; an Issue is never mutated after extraction.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	File        string   `json:"file,omitempty"`
	Line        int      `json:"line,omitempty"`
	Suggestion  string   `json:"suggestion"`
}

// Individual reports whether the issue warrants its own tracker issue.
// Anything that is not critical or high (including unrecognized severity
// strings) is rolled into the summary issue instead.
func (i Issue) Individual() bool {
	return i.Severity == SeverityCritical || i.Severity == SeverityHigh
}

// ReviewType selects which instruction template drives a review run.
type ReviewType string

const (
	ReviewComprehensive ReviewType = "comprehensive"
	ReviewSecurity      ReviewType = "security"
	ReviewPerformance   ReviewType = "performance"
	ReviewArchitecture  ReviewType = "architecture"
	ReviewBugs          ReviewType = "bugs"
)

// ReviewTypes lists every valid review type.
var ReviewTypes = []ReviewType{
	ReviewComprehensive,
	ReviewSecurity,
	ReviewPerformance,
	ReviewArchitecture,
	ReviewBugs,
}

// Valid reports whether rt is one of the known review types.
func (rt ReviewType) Valid() bool {
	for _, t := range ReviewTypes {
		if rt == t {
			return true
		}
	}
	return false
}
