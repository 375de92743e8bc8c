package review

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joescharf/codereview/internal/models"
)

// instructions maps each review type to the instruction block placed at
// the top of the prompt.
var instructions = map[models.ReviewType]string{
	models.ReviewComprehensive: `Please perform a comprehensive code review of this codebase.
Look for:
1. Code quality issues
2. Security vulnerabilities
3. Performance problems
4. Architecture concerns
5. Missing tests or documentation
6. Best practice violations
7. Potential bugs
8. Technical debt

For each issue found, provide:
- Severity: critical/high/medium/low
- Category: security/performance/quality/architecture/documentation
- File and line number (if applicable)
- Clear description
- Suggested fix`,

	models.ReviewSecurity: `Perform a security-focused review. Look for:
- SQL injection vulnerabilities
- XSS vulnerabilities
- Authentication/authorization issues
- Exposed secrets or API keys
- Insecure dependencies
- Missing input validation
- CORS issues
- Cryptographic weaknesses`,

	models.ReviewPerformance: `Review for performance issues:
- N+1 queries
- Memory leaks
- Inefficient algorithms
- Missing caching
- Blocking operations
- Resource exhaustion risks
- Database optimization opportunities`,

	models.ReviewArchitecture: `Review the architecture and design:
- Code organization
- Separation of concerns
- Design pattern usage
- Coupling and cohesion
- Scalability issues
- Maintainability concerns
- Technical debt`,

	models.ReviewBugs: `Look for potential bugs:
- Logic errors
- Race conditions
- Null pointer exceptions
- Off-by-one errors
- Unhandled exceptions
- Type mismatches
- Edge cases not handled`,
}

// outputSchema is the example the model is asked to follow. The extractor
// depends on the response containing one JSON object with an "issues" array.
const outputSchema = `Please provide your findings in JSON format:
{
    "issues": [
        {
            "severity": "critical|high|medium|low",
            "category": "security|performance|quality|architecture|documentation|bug",
            "title": "Brief title for the issue",
            "description": "Detailed description",
            "file": "path/to/file.py",
            "line": 123,
            "suggestion": "How to fix this issue"
        }
    ]
}`

// Templates holds the per-review-type instruction blocks used to build
// prompts. The zero value is unusable; use DefaultTemplates or LoadTemplates.
type Templates struct {
	byType map[models.ReviewType]string
}

// DefaultTemplates returns the built-in instruction templates.
func DefaultTemplates() *Templates {
	byType := make(map[models.ReviewType]string, len(instructions))
	for rt, text := range instructions {
		byType[rt] = text
	}
	return &Templates{byType: byType}
}

// LoadTemplates reads a YAML file mapping review-type names to instruction
// text and overlays it on the defaults. Unknown keys are an error so typos
// in the override file surface immediately.
func LoadTemplates(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse templates file: %w", err)
	}

	t := DefaultTemplates()
	for key, text := range overrides {
		rt := models.ReviewType(key)
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown review type %q in %s", key, path)
		}
		t.byType[rt] = text
	}
	return t, nil
}

// Instruction returns the instruction block for rt, falling back to the
// comprehensive template for unknown types.
func (t *Templates) Instruction(rt models.ReviewType) string {
	if text, ok := t.byType[rt]; ok {
		return text
	}
	return t.byType[models.ReviewComprehensive]
}

// BuildPrompt assembles the full request text for one batch: the selected
// instruction block, each file tagged with its path in a fenced block, and
// the output-schema example.
func (t *Templates) BuildPrompt(rt models.ReviewType, batch models.Batch) string {
	var contexts []string
	for _, f := range batch.Files {
		contexts = append(contexts, fmt.Sprintf("File: %s\n```\n%s\n```", f.Path, f.Content))
	}

	var sb strings.Builder
	sb.WriteString(t.Instruction(rt))
	sb.WriteString("\n\nHere are the files to review:\n\n")
	sb.WriteString(strings.Join(contexts, "\n\n"))
	sb.WriteString("\n\n")
	sb.WriteString(outputSchema)
	return sb.String()
}
