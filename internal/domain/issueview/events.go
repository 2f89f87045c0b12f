package issueview

import (
	"repoview/internal/pkg/client"
)

type Event interface {
	isEvent()
}

// MountStarted is issued when the initial joint fetch is dispatched,
// on mount and on every retry.
type MountStarted struct {
	RepoName string
	Token    uint64
}

type MountSucceeded struct {
	Token      uint64
	Repository *client.Repository
	Issues     []*client.Issue
}

type MountFailed struct {
	Token uint64
	Err   error
}

// FilterChanged is issued together with the refetch of page 1.
type FilterChanged struct {
	Filter client.IssueState
	Token  uint64
}

// PageChanged is issued when a fetch of Page is dispatched. The page
// itself only moves once the fetch succeeds.
type PageChanged struct {
	Page  int
	Token uint64
}

type FetchSucceeded struct {
	Token  uint64
	Page   int
	Issues []*client.Issue
}

type FetchFailed struct {
	Token uint64
	Err   error
}

func (MountStarted) isEvent()   {}
func (MountSucceeded) isEvent() {}
func (MountFailed) isEvent()    {}
func (FilterChanged) isEvent()  {}
func (PageChanged) isEvent()    {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}

// Reduce returns the state that follows s after e. Completions carrying a
// token other than the latest issued one are stale and leave s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case MountStarted:
		s.RepoName = e.RepoName
		s.Token = e.Token
		s.Loading = true
		s.Err = nil
		s.RefreshErr = nil
		s.Refreshing = false

	case MountSucceeded:
		if e.Token != s.Token {
			return s
		}
		s.Repository = e.Repository
		s.Issues = issuesOrEmpty(e.Issues)
		s.ShownFilter = s.Filter
		s.Page = 1
		s.Loading = false
		s.Err = nil

	case MountFailed:
		if e.Token != s.Token {
			return s
		}
		s.Loading = false
		s.Err = e.Err

	case FilterChanged:
		s.Filter = e.Filter
		s.Token = e.Token
		s.Refreshing = true

	case PageChanged:
		s.Token = e.Token
		s.Refreshing = true

	case FetchSucceeded:
		if e.Token != s.Token {
			return s
		}
		s.Issues = issuesOrEmpty(e.Issues)
		s.ShownFilter = s.Filter
		s.Page = e.Page
		s.Refreshing = false
		s.RefreshErr = nil

	case FetchFailed:
		if e.Token != s.Token {
			return s
		}
		s.Filter = s.ShownFilter
		s.Refreshing = false
		s.RefreshErr = e.Err
	}

	return s
}

// IsStale reports whether e is a completion that Reduce would discard.
func IsStale(s State, e Event) bool {
	switch e := e.(type) {
	case MountSucceeded:
		return e.Token != s.Token
	case MountFailed:
		return e.Token != s.Token
	case FetchSucceeded:
		return e.Token != s.Token
	case FetchFailed:
		return e.Token != s.Token
	}

	return false
}

func issuesOrEmpty(issues []*client.Issue) []*client.Issue {
	if issues == nil {
		return []*client.Issue{}
	}

	return issues
}
