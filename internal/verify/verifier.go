package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/infra/logger"
	"github.com/arklim/social-platform-community/internal/repository"
)

const (
	defaultPageSize = 200
	maxListPages    = 50

	accessDeniedCode = "POST_PRIVATE_ACCESS_DENIED"
)

// GroundTruthSource reads the private posts straight from storage, bypassing
// the API under test.
type GroundTruthSource interface {
	ListPrivateGeneralPosts(ctx context.Context) ([]domain.Post, error)
}

// UserSource resolves the author of the target post and an unrelated user to
// impersonate.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindOtherActive(ctx context.Context, excludeID int64) (*domain.User, error)
}

// TokenIssuer mints access tokens for arbitrary subjects without a password
// round trip.
type TokenIssuer interface {
	Issue(subjectEmail string) (string, error)
}

// Verifier orchestrates an end-to-end check that private general posts stay
// private. It reads ground truth from the database, mints tokens for the
// author and an unrelated user, and probes the running API from all three
// perspectives: author, other user, and anonymous.
type Verifier struct {
	posts    GroundTruthSource
	users    UserSource
	issuer   TokenIssuer
	api      *Client
	pageSize int
	logger   *zap.Logger
}

// NewVerifier constructs a Verifier.
func NewVerifier(posts GroundTruthSource, users UserSource, issuer TokenIssuer, api *Client, pageSize int, log *zap.Logger) *Verifier {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{
		posts:    posts,
		users:    users,
		issuer:   issuer,
		api:      api,
		pageSize: pageSize,
		logger:   log,
	}
}

type perspectiveResult struct {
	name       string
	assertions []Assertion
	err        error
}

// Run executes the full verification and returns the report. A cancelled
// context yields VerdictCancelled; transport or envelope failures yield
// VerdictInconclusive; a missing fixture yields
// VerdictInsufficientFixtureData; an observed leak yields VerdictBugDetected.
func (v *Verifier) Run(ctx context.Context) Report {
	report := Report{}

	target, author, other, verdict, detail := v.selectFixture(ctx)
	if verdict != "" {
		report.Verdict = verdict
		report.Detail = detail
		return report
	}

	v.logger.Info("fixture selected",
		zap.Int64("post_id", target.ID),
		zap.String("author", logger.MaskEmail(author.Email)),
		zap.String("other", logger.MaskEmail(other.Email)),
	)

	authorToken, err := v.issuer.Issue(author.Email)
	if err != nil {
		report.Verdict = VerdictInconclusive
		report.Detail = fmt.Sprintf("issue author token: %v", err)
		return report
	}
	otherToken, err := v.issuer.Issue(other.Email)
	if err != nil {
		report.Verdict = VerdictInconclusive
		report.Detail = fmt.Sprintf("issue other token: %v", err)
		return report
	}

	results := make(chan perspectiveResult, 3)
	var wg sync.WaitGroup

	probes := []struct {
		name    string
		token   string
		visible bool
	}{
		{name: "author", token: authorToken, visible: true},
		{name: "other_user", token: otherToken, visible: false},
		{name: "anonymous", token: "", visible: false},
	}

	for _, probe := range probes {
		wg.Add(1)
		go func(name, token string, visible bool) {
			defer wg.Done()
			assertions, err := v.probePerspective(ctx, name, token, visible, target.ID)
			results <- perspectiveResult{name: name, assertions: assertions, err: err}
		}(probe.name, probe.token, probe.visible)
	}

	wg.Wait()
	close(results)

	var probeErr error
	for result := range results {
		report.Assertions = append(report.Assertions, result.assertions...)
		if result.err != nil && probeErr == nil {
			probeErr = result.err
		}
	}

	if probeErr != nil {
		if errors.Is(probeErr, context.Canceled) || errors.Is(probeErr, context.DeadlineExceeded) {
			report.Verdict = VerdictCancelled
			report.Detail = "run interrupted before completion"
			return report
		}
		report.Verdict = VerdictInconclusive
		report.Detail = probeErr.Error()
		return report
	}

	for _, assertion := range report.Assertions {
		if !assertion.Passed {
			report.Verdict = VerdictBugDetected
			report.Detail = fmt.Sprintf("%s: expected %s, observed %s", assertion.Name, assertion.Expected, assertion.Observed)
			return report
		}
	}

	report.Verdict = VerdictConfirmed
	report.Detail = fmt.Sprintf("private post %d behaved correctly for all perspectives", target.ID)
	return report
}

// selectFixture reads ground truth and picks the newest private general post
// plus its author and an unrelated active user. A non-empty verdict short
// circuits the run.
func (v *Verifier) selectFixture(ctx context.Context) (domain.Post, *domain.User, *domain.User, Verdict, string) {
	privatePosts, err := v.posts.ListPrivateGeneralPosts(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Post{}, nil, nil, VerdictCancelled, "run interrupted before completion"
		}
		return domain.Post{}, nil, nil, VerdictInconclusive, fmt.Sprintf("read ground truth: %v", err)
	}
	if len(privatePosts) == 0 {
		return domain.Post{}, nil, nil, VerdictInsufficientFixtureData, "no private general posts exist to verify against"
	}

	target := privatePosts[0]

	author, err := v.users.GetByID(ctx, target.AuthorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, nil, nil, VerdictInsufficientFixtureData,
				fmt.Sprintf("author %d of post %d is missing or deleted", target.AuthorID, target.ID)
		}
		return domain.Post{}, nil, nil, VerdictInconclusive, fmt.Sprintf("resolve author: %v", err)
	}

	other, err := v.users.FindOtherActive(ctx, author.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, nil, nil, VerdictInsufficientFixtureData,
				"no second active user exists to impersonate"
		}
		return domain.Post{}, nil, nil, VerdictInconclusive, fmt.Sprintf("resolve other user: %v", err)
	}

	return target, author, other, "", ""
}

// probePerspective checks both surfaces for one viewer: the feed must
// include the target exactly when the viewer may observe it, and the detail
// endpoint must agree.
func (v *Verifier) probePerspective(ctx context.Context, name, token string, expectVisible bool, targetID int64) ([]Assertion, error) {
	var partial Report

	found, err := v.feedContains(ctx, token, targetID)
	if err != nil {
		return partial.Assertions, fmt.Errorf("%s feed probe: %w", name, err)
	}
	partial.AddResult(name+"_feed", visibilityWord(expectVisible), visibilityWord(found), found == expectVisible)

	probe, err := v.api.GetPost(ctx, token, targetID)
	if err != nil {
		return partial.Assertions, fmt.Errorf("%s detail probe: %w", name, err)
	}

	if expectVisible {
		partial.AddResult(name+"_detail", "200", fmt.Sprintf("%d", probe.StatusCode), probe.Visible())
		return partial.Assertions, nil
	}

	denied := probe.StatusCode == http.StatusForbidden || probe.StatusCode == http.StatusNotFound
	observed := fmt.Sprintf("%d", probe.StatusCode)
	if probe.ErrorCode != "" {
		observed = fmt.Sprintf("%d %s", probe.StatusCode, probe.ErrorCode)
	}
	partial.AddResult(name+"_detail", fmt.Sprintf("403 %s or 404", accessDeniedCode), observed, denied)

	return partial.Assertions, nil
}

// feedContains walks the paginated feed looking for the target post id. The
// walk stops on a short page or after a bounded number of pages.
func (v *Verifier) feedContains(ctx context.Context, token string, targetID int64) (bool, error) {
	for page := 0; page < maxListPages; page++ {
		items, _, err := v.api.ListPage(ctx, token, page, v.pageSize)
		if err != nil {
			return false, err
		}

		for _, item := range items {
			if item.ID == targetID {
				return true, nil
			}
		}

		if len(items) < v.pageSize {
			return false, nil
		}
	}

	return false, nil
}

func visibilityWord(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}
