// Package tracker files review findings as GitHub issues: one issue per
// critical or high finding, one rolled-up summary for the rest.
package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/joescharf/codereview/internal/models"
	"github.com/joescharf/codereview/internal/output"
)

// IssuesService is the slice of the GitHub Issues API the reporter uses.
// Tests substitute a mock; production wires github.Client.Issues.
type IssuesService interface {
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// DefaultIssuePause is the fixed sleep between issue creations, respecting
// the API's secondary rate limits.
const DefaultIssuePause = 2 * time.Second

// labelColors maps known label names to their 6-hex-digit colors.
var labelColors = map[string]string{
	"severity:critical": "d73a4a",
	"severity:high":     "e99695",
	"severity:medium":   "f9d71c",
	"severity:low":      "7bbe48",
	"claude-review":     "0052cc",
	"automated":         "bfdadc",
}

// defaultLabelColor is used for labels with no entry in labelColors.
const defaultLabelColor = "c5def5"

// Reporter creates labels and issues in one GitHub repository.
type Reporter struct {
	issues IssuesService
	owner  string
	repo   string
	ui     *output.UI
	pause  time.Duration
	sleep  func(time.Duration)

	// labelCache records whether a label is known to exist. Populated from
	// one ListLabels pass on first use, then updated as labels are created.
	labelCache map[string]bool
}

// NewReporter creates a Reporter for the "owner/repo" repository using an
// oauth2 token for authentication.
func NewReporter(token, repository string, ui *output.UI) (*Reporter, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)

	return &Reporter{
		issues: client.Issues,
		owner:  owner,
		repo:   repo,
		ui:     ui,
		pause:  DefaultIssuePause,
		sleep:  time.Sleep,
	}, nil
}

// NewReporterWithService creates a Reporter around an explicit issues
// service, with no pause between creations. Used by tests.
func NewReporterWithService(svc IssuesService, owner, repo string, ui *output.UI) *Reporter {
	return &Reporter{
		issues: svc,
		owner:  owner,
		repo:   repo,
		ui:     ui,
		sleep:  func(time.Duration) {},
	}
}

// SetPause overrides the sleep inserted between issue creations.
func (r *Reporter) SetPause(d time.Duration) {
	r.pause = d
}

func splitRepository(repository string) (owner, repo string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be owner/repo, got %q", repository)
	}
	return parts[0], parts[1], nil
}

// Report partitions findings by severity and files them: an individual
// issue per critical/high finding, then a single summary issue for the
// rest. Per-issue failures are logged and never stop the remaining work.
// Returns the number of issues created.
func (r *Reporter) Report(ctx context.Context, issues []models.Issue, rt models.ReviewType, runID string) int {
	var individual, other []models.Issue
	for _, issue := range issues {
		if issue.Individual() {
			individual = append(individual, issue)
		} else {
			other = append(other, issue)
		}
	}

	if r.ui.DryRun {
		r.preview(individual, other)
		return 0
	}

	created := 0
	for i, issue := range individual {
		if i > 0 {
			r.sleep(r.pause)
		}
		title := issueTitle(issue)
		req := &github.IssueRequest{
			Title:  github.Ptr(title),
			Body:   github.Ptr(issueBody(issue, rt, runID)),
			Labels: github.Ptr(r.ensureLabels(ctx, issueLabels(issue))),
		}
		if _, _, err := r.issues.Create(ctx, r.owner, r.repo, req); err != nil {
			r.ui.Warning("Error creating issue %q: %v", title, err)
			continue
		}
		r.ui.Success("Created issue: %s", title)
		created++
	}

	if len(other) > 0 {
		if created > 0 {
			r.sleep(r.pause)
		}
		req := &github.IssueRequest{
			Title:  github.Ptr(summaryTitle(other)),
			Body:   github.Ptr(summaryBody(other, runID)),
			Labels: github.Ptr(r.ensureLabels(ctx, []string{"claude-review", "automated", "summary"})),
		}
		if _, _, err := r.issues.Create(ctx, r.owner, r.repo, req); err != nil {
			r.ui.Warning("Error creating summary issue: %v", err)
		} else {
			r.ui.Success("Created summary issue with %d findings", len(other))
			created++
		}
	}

	return created
}

// ensureLabels returns the subset of names confirmed to exist in the
// repository, creating missing ones along the way. A label that cannot be
// created is dropped from the issue rather than failing its creation.
func (r *Reporter) ensureLabels(ctx context.Context, names []string) []string {
	confirmed := make([]string, 0, len(names))
	for _, name := range names {
		if r.ensureLabel(ctx, name) {
			confirmed = append(confirmed, name)
		} else {
			r.ui.Warning("Label %q unavailable, filing without it", name)
		}
	}
	return confirmed
}

func (r *Reporter) ensureLabel(ctx context.Context, name string) bool {
	if r.labelCache == nil {
		r.labelCache = r.fetchLabels(ctx)
	}
	if exists, ok := r.labelCache[strings.ToLower(name)]; ok {
		return exists
	}

	color := labelColors[name]
	if color == "" {
		color = defaultLabelColor
	}
	_, _, err := r.issues.CreateLabel(ctx, r.owner, r.repo, &github.Label{
		Name:  github.Ptr(name),
		Color: github.Ptr(color),
	})
	r.labelCache[strings.ToLower(name)] = err == nil
	return err == nil
}

// fetchLabels lists every label in the repository once per run.
func (r *Reporter) fetchLabels(ctx context.Context) map[string]bool {
	cache := make(map[string]bool)
	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := r.issues.ListLabels(ctx, r.owner, r.repo, opts)
		if err != nil {
			r.ui.Warning("Error listing labels: %v", err)
			return cache
		}
		for _, l := range labels {
			cache[strings.ToLower(l.GetName())] = true
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return cache
}

func (r *Reporter) preview(individual, other []models.Issue) {
	table := r.ui.Table([]string{"Severity", "Category", "Title", "File"})
	for _, issue := range append(append([]models.Issue{}, individual...), other...) {
		_ = table.Append([]string{
			output.SeverityColor(string(issue.Severity)),
			issue.Category,
			issue.Title,
			issue.File,
		})
	}
	_ = table.Render()
	r.ui.DryRunMsg("Would create %d individual issues and %d summarized findings", len(individual), len(other))
}
