package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/codereview/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "codereview",
	Short: "Single-shot AI codebase review that files findings as GitHub issues",
	Long: `codereview scans a repository's text files, sends them to the Anthropic
API for review in token-budgeted batches, writes a Markdown summary report,
and files the findings as GitHub issues: one issue per critical/high finding
and a rolled-up summary for the rest.

Requires ANTHROPIC_API_KEY and GITHUB_TOKEN environment variables (or the
matching config keys).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd.Context())
	},
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Review without creating GitHub issues")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/codereview/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "codereview"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CODEREVIEW")
	viper.AutomaticEnv()

	// Keep the workflow-style env var names working alongside the
	// CODEREVIEW_* prefix.
	_ = viper.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("github.repository", "GITHUB_REPOSITORY")
	_ = viper.BindEnv("review.type", "REVIEW_TYPE")

	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.repository", "")
	viper.SetDefault("github.issue_pause", 2*time.Second)
	viper.SetDefault("review.type", "comprehensive")
	viper.SetDefault("review.root", ".")
	viper.SetDefault("review.token_budget", 50000)
	viper.SetDefault("review.max_file_size", 50000)
	viper.SetDefault("review.batch_pause", 5*time.Second)
	viper.SetDefault("review.prompts_file", "")
	viper.SetDefault("report.path", "review_summary.md")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun
}
