package client

import (
	"context"
	"strconv"
	"sync"
)

// MockClient serves canned values and records every call it receives.
// The func fields take precedence over the canned values when set.
type MockClient struct {
	ErrorValue  error
	Repository  *Repository
	Issues      []*Issue
	IssuesError error

	GetRepositoryFunc func(ctx context.Context, name string) (*Repository, error)
	GetIssuesFunc     func(ctx context.Context, o *GetIssuesOptions) ([]*Issue, error)

	mu              sync.Mutex
	repositoryCalls []string
	issuesCalls     []GetIssuesOptions
}

func (c *MockClient) GetRepository(ctx context.Context, name string) (*Repository, error) {
	c.mu.Lock()
	c.repositoryCalls = append(c.repositoryCalls, name)
	c.mu.Unlock()

	if c.GetRepositoryFunc != nil {
		return c.GetRepositoryFunc(ctx, name)
	}
	if c.ErrorValue != nil {
		return nil, c.ErrorValue
	}

	return c.Repository, nil
}

func (c *MockClient) GetIssues(ctx context.Context, o *GetIssuesOptions) ([]*Issue, error) {
	c.mu.Lock()
	c.issuesCalls = append(c.issuesCalls, *o)
	c.mu.Unlock()

	if c.GetIssuesFunc != nil {
		return c.GetIssuesFunc(ctx, o)
	}
	if c.IssuesError != nil {
		return nil, c.IssuesError
	}
	if c.ErrorValue != nil {
		return nil, c.ErrorValue
	}

	return c.Issues, nil
}

func (c *MockClient) RepositoryCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.repositoryCalls...)
}

func (c *MockClient) IssuesCalls() []GetIssuesOptions {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]GetIssuesOptions(nil), c.issuesCalls...)
}

// MockIssues builds n issues with ids starting at first.
func MockIssues(first, n int) []*Issue {
	issues := make([]*Issue, 0, n)
	for i := first; i < first+n; i++ {
		issues = append(issues, &Issue{
			ID:     strconv.Itoa(i),
			Number: int64(i),
			Title:  "issue " + strconv.Itoa(i),
			URL:    "https://github.com/owner/repo/issues/" + strconv.Itoa(i),
			User:   User{Login: "user" + strconv.Itoa(i)},
		})
	}

	return issues
}
