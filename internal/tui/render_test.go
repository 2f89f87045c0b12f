package tui

import (
	"testing"

	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/client"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

var testIcons = initIconsMap(viper.New())

func loadedState(issues []*client.Issue) issueview.State {
	s := issueview.NewState()
	s = issueview.Reduce(s, issueview.MountStarted{RepoName: "facebook/react", Token: 1})
	s = issueview.Reduce(s, issueview.MountSucceeded{
		Token: 1,
		Repository: &client.Repository{
			Name:        "react",
			FullName:    "facebook/react",
			Description: "A JavaScript library",
			Owner:       client.User{Login: "facebook"},
		},
		Issues: issues,
	})
	s.HasMore = issueview.HeuristicHasMore(len(s.Issues), issueview.PageSize)

	return s
}

func TestHeaderText(t *testing.T) {
	t.Run("shows the back link and the repository", func(t *testing.T) {
		text := headerText(loadedState(nil), testIcons)

		assert.Contains(t, text, "Back to repositories")
		assert.Contains(t, text, "@ facebook / [::b]react[::-]")
		assert.Contains(t, text, "A JavaScript library")
	})

	t.Run("shows only the name before the repository loaded", func(t *testing.T) {
		s := issueview.Reduce(issueview.NewState(), issueview.MountStarted{RepoName: "facebook/react", Token: 1})

		text := headerText(s, testIcons)

		assert.Contains(t, text, "facebook/react")
		assert.NotContains(t, text, "A JavaScript library")
	})
}

func TestIssueRows(t *testing.T) {
	issues := client.MockIssues(1, 2)
	issues[0].Labels = []*client.Label{
		{Name: "bug", Color: "D73A4A"},
		{Name: "odd", Color: "zz"},
	}

	rows := issueRows(loadedState(issues), testIcons)

	assert.Len(t, rows, 2)
	assert.Equal(t, "#1", rows[0].Number)
	assert.Equal(t, "issue 1", rows[0].Title)
	assert.Equal(t, "👤 user1", rows[0].Author)
	assert.Equal(t, "[#d73a4a]🏷 bug[-] 🏷 odd", rows[0].Labels)
	assert.Equal(t, "https://github.com/owner/repo/issues/1", rows[0].URL)
	assert.Equal(t, "", rows[1].Labels)
}

func TestPagerEnabled(t *testing.T) {
	t.Run("a full first page enables next only", func(t *testing.T) {
		prior, next := pagerEnabled(loadedState(client.MockIssues(1, 5)))

		assert.False(t, prior)
		assert.True(t, next)
	})

	t.Run("a partial second page enables prior only", func(t *testing.T) {
		s := loadedState(client.MockIssues(1, 3))
		s.Page = 2

		prior, next := pagerEnabled(s)

		assert.True(t, prior)
		assert.False(t, next)
	})
}

func TestStatusText(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		s := issueview.Reduce(issueview.NewState(), issueview.MountStarted{RepoName: "facebook/react", Token: 1})

		assert.Contains(t, statusText(s, testIcons), "Loading facebook/react")
	})

	t.Run("initial failure offers a retry", func(t *testing.T) {
		s := issueview.Reduce(issueview.NewState(), issueview.MountStarted{RepoName: "a/b", Token: 1})
		s = issueview.Reduce(s, issueview.MountFailed{Token: 1, Err: &client.APIError{StatusCode: 404, Message: "Not Found"}})

		text := statusText(s, testIcons)

		assert.Contains(t, text, "could not be loaded")
		assert.Contains(t, text, "Press r to retry")
	})

	t.Run("refreshing", func(t *testing.T) {
		s := issueview.Reduce(loadedState(nil), issueview.FilterChanged{Filter: client.IssueStateClosed, Token: 2})

		assert.Contains(t, statusText(s, testIcons), "Loading closed issues")
	})

	t.Run("refresh failure", func(t *testing.T) {
		s := issueview.Reduce(loadedState(nil), issueview.PageChanged{Page: 2, Token: 2})
		s = issueview.Reduce(s, issueview.FetchFailed{Token: 2, Err: errors.New("offline")})

		assert.Contains(t, statusText(s, testIcons), "Network failure: offline")
	})

	t.Run("empty page", func(t *testing.T) {
		assert.Equal(t, "Page 1, no open issues", statusText(loadedState(nil), testIcons))
	})

	t.Run("loaded page", func(t *testing.T) {
		assert.Equal(t, "Page 1, 3 open issues", statusText(loadedState(client.MockIssues(1, 3)), testIcons))
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", errorMessage(nil))
	assert.Contains(t, errorMessage(errors.Wrap(issueview.ValidateRepositoryName("x"), "mount")), "identifier is invalid")
}
