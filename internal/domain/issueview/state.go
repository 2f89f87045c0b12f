package issueview

import (
	"repoview/internal/pkg/client"
)

const DefaultFilter = client.IssueStateOpen

// State is one snapshot of a repository view. Values are never changed in
// place: every event produces a new State through Reduce.
type State struct {
	RepoName   string
	Repository *client.Repository
	Issues     []*client.Issue
	Filter     client.IssueState
	Page       int

	// ShownFilter is the filter Issues were fetched with. Filter only
	// differs from it while a filter change is in flight.
	ShownFilter client.IssueState

	// Loading is only true while the initial joint fetch runs.
	Loading bool
	// Refreshing is true while a filter or page refetch runs.
	Refreshing bool
	// Err is the failure of the initial fetch.
	Err error
	// RefreshErr is the failure of the last refetch, cleared by the next success.
	RefreshErr error

	// Token identifies the latest issued request.
	Token uint64
	// HasMore is the outcome of the pager policy for the current issues.
	HasMore bool
}

func NewState() State {
	return State{
		Issues:  []*client.Issue{},
		Filter:      DefaultFilter,
		ShownFilter: DefaultFilter,
		Page:        1,
		Loading:     true,
	}
}

// Ready reports whether the initial fetch has completed successfully.
func (s State) Ready() bool {
	return !s.Loading && s.Err == nil && s.Repository != nil
}

// Failed reports whether the initial fetch has failed.
func (s State) Failed() bool {
	return !s.Loading && s.Err != nil
}

func (s State) CanPriorPage() bool {
	return s.Ready() && s.Page > 1
}

func (s State) CanNextPage() bool {
	return s.Ready() && s.HasMore
}
