// Package runner sequences a review run: collect, batch, review each
// batch, write the summary report, and file the findings.
package runner

import (
	"context"
	"time"

	"github.com/joescharf/codereview/internal/batcher"
	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/output"
	"github.com/joescharf/codereview/internal/report"
)

// DefaultBatchPause is the fixed sleep between reviewed batches,
// respecting the model API's rate limits.
const DefaultBatchPause = 5 * time.Second

// Collector produces the ordered set of files to review.
type Collector interface {
	Collect() ([]models.SourceFile, error)
}

// Reviewer reviews one batch and returns its findings.
type Reviewer interface {
	ReviewBatch(ctx context.Context, rt models.ReviewType, batch models.Batch) ([]models.Issue, error)
}

// Reporter files findings with the issue tracker and returns how many
// issues it created.
type Reporter interface {
	Report(ctx context.Context, issues []models.Issue, rt models.ReviewType, runID string) int
}

// Runner holds the wired pipeline for one review run.
type Runner struct {
	Collector   Collector
	Reviewer    Reviewer
	Reporter    Reporter
	UI          *output.UI
	ReviewType  models.ReviewType
	TokenBudget int
	ReportPath  string
	BatchPause  time.Duration
	RunID       string

	// Sleep is swappable so tests run without real delays.
	Sleep func(time.Duration)
}

// Run executes the pipeline. Per-batch and per-issue failures are logged
// and absorbed; only collection failure is an error.
func (r *Runner) Run(ctx context.Context) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	reportPath := r.ReportPath
	if reportPath == "" {
		reportPath = report.DefaultPath
	}

	r.UI.Info("Starting Claude codebase review (type: %s, run: %s)", r.ReviewType, r.RunID)

	files, err := r.Collector.Collect()
	if err != nil {
		return err
	}
	r.UI.Info("Found %d files to review", len(files))

	batches := batcher.Split(files, r.TokenBudget)
	r.UI.Info("Split into %d batches for review", len(batches))

	var allIssues []models.Issue
	for i, batch := range batches {
		if i > 0 {
			sleep(r.BatchPause)
		}
		r.UI.Info("Reviewing batch %d/%d (~%d tokens, %d files)...",
			i+1, len(batches), batch.EstimatedTokens(), len(batch.Files))

		issues, err := r.Reviewer.ReviewBatch(ctx, r.ReviewType, batch)
		if err != nil {
			r.UI.Warning("Error reviewing batch %d: %v", i+1, err)
			continue
		}
		r.UI.VerboseLog("Found %d issues", len(issues))
		allIssues = append(allIssues, issues...)
	}

	r.UI.Info("Total issues found: %d", len(allIssues))

	summary := report.Generate(allIssues, r.ReviewType, r.RunID)
	if err := report.Write(reportPath, summary); err != nil {
		r.UI.Warning("%v", err)
	} else {
		r.UI.VerboseLog("Wrote summary report to %s", reportPath)
	}

	if len(allIssues) == 0 {
		r.UI.Success("No issues found!")
		return nil
	}

	r.UI.Info("Creating issues...")
	created := r.Reporter.Report(ctx, allIssues, r.ReviewType, r.RunID)
	r.UI.Success("Review complete: %d issues filed", created)
	return nil
}
