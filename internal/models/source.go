package models

// SourceFile is one collected repository file, held in memory for the
// duration of a run.
type SourceFile struct {
	Path    string
	Content string
}

// EstimatedTokens returns the file's approximate token count using the
// fixed 4-characters-per-token heuristic, rounded up.
func (f SourceFile) EstimatedTokens() int {
	return EstimateTokens(f.Content)
}

// EstimateTokens approximates the token count of s as ceil(len/4).
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// Batch is an ordered group of files submitted together in one review
// request. Its estimated size stays within the configured token budget
// unless it holds a single file that alone exceeds the budget.
type Batch struct {
	Files []SourceFile
}

// EstimatedTokens returns the sum of the batch's per-file estimates.
func (b Batch) EstimatedTokens() int {
	total := 0
	for _, f := range b.Files {
		total += f.EstimatedTokens()
	}
	return total
}
