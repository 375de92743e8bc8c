package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joescharf/codereview/internal/models"
)

// findings is the envelope the model is asked to produce.
type findings struct {
	Issues []models.Issue `json:"issues"`
}

// ExtractIssues scans free-form model output for a JSON object and returns
// its "issues" array. The scan takes the region from the first "{" to the
// last "}" in the text, a greedy match with no awareness of nesting. A
// response with no object region at all yields no issues and no error; a
// region that does not decode is an error so the caller can log it.
//
// Known limitation: output containing multiple separate {...} regions, or
// stray braces outside the intended object, defeats the scan and the decode
// fails. The failure downgrades to "zero issues for this batch", never an
// aborted run.
func ExtractIssues(text string) ([]models.Issue, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, nil
	}

	var f findings
	if err := json.Unmarshal([]byte(text[start:end+1]), &f); err != nil {
		return nil, fmt.Errorf("decode findings JSON: %w", err)
	}
	return f.Issues, nil
}
