package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/codereview/internal/models"
)

func TestExtractIssues_PlainObject(t *testing.T) {
	text := `{"issues": [{"severity": "high", "category": "security", "title": "Hardcoded key", "description": "d", "suggestion": "s"}]}`

	issues, err := ExtractIssues(text)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "Hardcoded key", issues[0].Title)
}

func TestExtractIssues_ObjectEmbeddedInProse(t *testing.T) {
	text := `Here is my analysis: {"issues": [{"severity":"critical","category":"security","title":"SQL injection","description":"raw query","file":"app.py","line":42,"suggestion":"use params"}]} Thanks!`

	issues, err := ExtractIssues(text)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityCritical, issues[0].Severity)
	assert.Equal(t, "app.py", issues[0].File)
	assert.Equal(t, 42, issues[0].Line)
}

func TestExtractIssues_FencedJSON(t *testing.T) {
	text := "```json\n{\"issues\": [{\"severity\": \"low\", \"category\": \"quality\", \"title\": \"t\", \"description\": \"d\", \"suggestion\": \"s\"}]}\n```"

	issues, err := ExtractIssues(text)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestExtractIssues_NoObjectRegion(t *testing.T) {
	issues, err := ExtractIssues("I found no issues, the code looks great.")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestExtractIssues_EmptyInput(t *testing.T) {
	issues, err := ExtractIssues("")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestExtractIssues_MalformedJSON(t *testing.T) {
	issues, err := ExtractIssues(`prefix {"issues": [} suffix`)
	assert.Error(t, err)
	assert.Empty(t, issues)
}

// A stray closing brace after the object widens the greedy match and the
// decode fails. That is the documented limitation of the scan: the batch
// yields zero issues rather than a guess at which region was intended.
func TestExtractIssues_TrailingBraceDefeatsScan(t *testing.T) {
	issues, err := ExtractIssues(`{"issues": []} and then a stray }`)
	assert.Error(t, err)
	assert.Empty(t, issues)
}

func TestExtractIssues_MissingIssuesField(t *testing.T) {
	issues, err := ExtractIssues(`{"summary": "all fine"}`)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestExtractIssues_ReturnsArrayUnchanged(t *testing.T) {
	text := `{"issues": [
		{"severity": "critical", "category": "security", "title": "a", "description": "da", "suggestion": "sa"},
		{"severity": "medium", "category": "quality", "title": "b", "description": "db", "file": "x.js", "suggestion": "sb"},
		{"severity": "wat", "category": "misc", "title": "c", "description": "dc", "suggestion": "sc"}
	]}`

	issues, err := ExtractIssues(text)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, "a", issues[0].Title)
	assert.Equal(t, "x.js", issues[1].File)
	// Unknown severities survive extraction; partitioning handles them later.
	assert.Equal(t, models.Severity("wat"), issues[2].Severity)
	assert.False(t, issues[2].Individual())
}
