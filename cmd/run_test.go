package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/output"
)

func setupCmdTest(t *testing.T) *bytes.Buffer {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	errOut := &bytes.Buffer{}
	ui = &output.UI{Out: &bytes.Buffer{}, ErrOut: errOut}
	return errOut
}

func TestResolveReviewType(t *testing.T) {
	tests := []struct {
		in   string
		want models.ReviewType
	}{
		{"comprehensive", models.ReviewComprehensive},
		{"security", models.ReviewSecurity},
		{"performance", models.ReviewPerformance},
		{"architecture", models.ReviewArchitecture},
		{"bugs", models.ReviewBugs},
		{"", models.ReviewComprehensive},
		{"styel", models.ReviewComprehensive},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			setupCmdTest(t)
			assert.Equal(t, tt.want, resolveReviewType(tt.in))
		})
	}
}

func TestResolveReviewType_WarnsOnUnknown(t *testing.T) {
	errOut := setupCmdTest(t)
	resolveReviewType("nonsense")
	assert.Contains(t, errOut.String(), "Unknown review type")
}

func TestRunReview_MissingAPIKey(t *testing.T) {
	setupCmdTest(t)
	err := runReview(context.Background())
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

func TestRunReview_MissingGitHubToken(t *testing.T) {
	setupCmdTest(t)
	viper.Set("anthropic.api_key", "sk-test")
	err := runReview(context.Background())
	assert.ErrorContains(t, err, "GITHUB_TOKEN")
}

func TestRunReview_MissingRepository(t *testing.T) {
	setupCmdTest(t)
	viper.Set("anthropic.api_key", "sk-test")
	viper.Set("github.token", "ghp-test")
	err := runReview(context.Background())
	assert.ErrorContains(t, err, "GITHUB_REPOSITORY")
}

func TestRunReview_BadRepositoryFormat(t *testing.T) {
	setupCmdTest(t)
	viper.Set("anthropic.api_key", "sk-test")
	viper.Set("github.token", "ghp-test")
	viper.Set("github.repository", "no-slash-here")
	err := runReview(context.Background())
	assert.ErrorContains(t, err, "owner/repo")
}

func TestRunReview_BadPromptsFile(t *testing.T) {
	setupCmdTest(t)
	viper.Set("anthropic.api_key", "sk-test")
	viper.Set("github.token", "ghp-test")
	viper.Set("github.repository", "acme/widgets")
	viper.Set("review.prompts_file", "/nonexistent/prompts.yaml")
	err := runReview(context.Background())
	assert.ErrorContains(t, err, "read templates file")
}
