// Package batcher partitions collected files into review batches that fit
// an approximate token budget.
package batcher

import "github.com/joescharf/codereview/internal/models"

// DefaultTokenBudget is the per-batch estimate ceiling applied when none
// is configured.
const DefaultTokenBudget = 50000

// Split greedily partitions files into batches whose estimated token size
// stays within budget. File order is preserved and every file lands in
// exactly one batch: when adding the next file would push the running
// estimate past the budget the current batch is closed and that file
// starts a new one. A file whose own estimate exceeds the budget still
// gets a batch to itself rather than being dropped.
func Split(files []models.SourceFile, budget int) []models.Batch {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}

	var batches []models.Batch
	var current []models.SourceFile
	currentSize := 0

	for _, f := range files {
		fileTokens := f.EstimatedTokens()

		if currentSize+fileTokens > budget {
			if len(current) > 0 {
				batches = append(batches, models.Batch{Files: current})
			}
			current = []models.SourceFile{f}
			currentSize = fileTokens
			continue
		}

		current = append(current, f)
		currentSize += fileTokens
	}

	if len(current) > 0 {
		batches = append(batches, models.Batch{Files: current})
	}

	return batches
}
