package cmd

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/codereview/internal/collector"
	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/review"
	"github.com/joescharf/codereview/internal/runner"
	"github.com/joescharf/codereview/internal/tracker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the review pipeline (same as invoking codereview with no subcommand)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd.Context())
	},
}

func init() {
	runCmd.Flags().String("type", "", "Review type: comprehensive, security, performance, architecture, bugs")
	runCmd.Flags().String("repo", "", "Target GitHub repository (owner/repo)")
	runCmd.Flags().String("root", "", "Directory tree to review (default current directory)")
	_ = viper.BindPFlag("review.type", runCmd.Flags().Lookup("type"))
	_ = viper.BindPFlag("github.repository", runCmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("review.root", runCmd.Flags().Lookup("root"))
	rootCmd.AddCommand(runCmd)
}

// runReview wires the pipeline from config and executes it. Only setup
// failures (missing credentials, bad repository, unreadable templates)
// return an error; everything downstream degrades per unit of work.
func runReview(ctx context.Context) error {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY not set (set env var or anthropic.api_key in config)")
	}

	token := viper.GetString("github.token")
	if token == "" && !dryRun {
		return fmt.Errorf("GITHUB_TOKEN not set (set env var or github.token in config)")
	}

	repository := viper.GetString("github.repository")
	if repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY not set (set env var, --repo, or github.repository in config)")
	}

	reviewType := resolveReviewType(viper.GetString("review.type"))

	templates := review.DefaultTemplates()
	if path := viper.GetString("review.prompts_file"); path != "" {
		t, err := review.LoadTemplates(path)
		if err != nil {
			return err
		}
		templates = t
	}

	reporter, err := tracker.NewReporter(token, repository, ui)
	if err != nil {
		return err
	}
	reporter.SetPause(viper.GetDuration("github.issue_pause"))

	root := viper.GetString("review.root")
	c := collector.New(root, ui)
	if max := viper.GetInt("review.max_file_size"); max > 0 {
		c.MaxFileSize = max
	}

	r := &runner.Runner{
		Collector:   c,
		Reviewer:    review.NewClient(apiKey, viper.GetString("anthropic.model"), templates),
		Reporter:    reporter,
		UI:          ui,
		ReviewType:  reviewType,
		TokenBudget: viper.GetInt("review.token_budget"),
		ReportPath:  viper.GetString("report.path"),
		BatchPause:  viper.GetDuration("review.batch_pause"),
		RunID:       ulid.Make().String(),
	}
	return r.Run(ctx)
}

// resolveReviewType validates the configured review type, warning and
// falling back to comprehensive when it is unrecognized.
func resolveReviewType(s string) models.ReviewType {
	rt := models.ReviewType(s)
	if rt.Valid() {
		return rt
	}
	if s != "" {
		ui.Warning("Unknown review type %q, using comprehensive", s)
	}
	return models.ReviewComprehensive
}
