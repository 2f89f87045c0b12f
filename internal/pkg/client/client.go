package client

import (
	"context"
	"fmt"
	"strings"

	"repoview/internal/errcodes"

	"github.com/pkg/errors"
)

// Client reads repositories and their issues from a remote issue tracker.
type Client interface {
	GetRepository(ctx context.Context, name string) (*Repository, error)
	GetIssues(ctx context.Context, o *GetIssuesOptions) ([]*Issue, error)
}

type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

// IssueStates lists the filter values in the order they are offered to users.
var IssueStates = []IssueState{
	IssueStateOpen,
	IssueStateClosed,
	IssueStateAll,
}

func (s IssueState) IsValid() bool {
	for _, v := range IssueStates {
		if s == v {
			return true
		}
	}

	return false
}

func ParseIssueState(s string) (IssueState, error) {
	state := IssueState(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", errors.Wrapf(errcodes.ErrUnknownIssueState, "got %q", s)
	}

	return state, nil
}

type User struct {
	Login     string
	AvatarURL string
}

type Repository struct {
	Name        string
	FullName    string
	Description string
	URL         string
	Owner       User
}

type Label struct {
	ID    string
	Name  string
	Color string
}

type Issue struct {
	ID     string
	Number int64
	Title  string
	URL    string
	State  string
	User   User
	Labels []*Label
}

type GetIssuesOptions struct {
	// Repository is the owner/name identifier, inserted into the path as is.
	Repository string
	State      IssueState
	PerPage    int
	// Page is omitted from the request when zero.
	Page int
}

// APIError is returned when the API answers with an error status.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}
