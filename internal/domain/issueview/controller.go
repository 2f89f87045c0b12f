package issueview

import (
	"context"
	"sync"

	"repoview/internal/errcodes"
	"repoview/internal/pkg/client"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Listener receives every new state, one at a time and in the order the
// states were produced. It is called without the controller lock held.
type Listener interface {
	Update(State)
}

type ListenerFunc func(State)

func (f ListenerFunc) Update(s State) { f(s) }

type Option func(*Controller)

// WithHasMorePolicy replaces HeuristicHasMore.
func WithHasMorePolicy(p HasMorePolicy) Option {
	return func(c *Controller) {
		c.hasMore = p
	}
}

// WithFilter sets the filter the initial fetch uses.
func WithFilter(f client.IssueState) Option {
	return func(c *Controller) {
		if f.IsValid() {
			c.state.Filter = f
			c.state.ShownFilter = f
		}
	}
}

// Controller owns the state of one mounted repository view and runs the
// fetches its operations trigger. Operations block until their fetch
// completes; callers on a UI loop run them on their own goroutine.
type Controller struct {
	client  client.Client
	hasMore HasMorePolicy

	mu         sync.Mutex
	state      State
	route      string
	listeners  []Listener
	pending    []State
	delivering bool
}

func NewController(c client.Client, opts ...Option) *Controller {
	ctl := &Controller{
		client:  c,
		hasMore: HeuristicHasMore,
		state:   NewState(),
	}

	for _, o := range opts {
		o(ctl)
	}

	return ctl
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, l)
}

// nextToken must be called with mu held.
func (c *Controller) nextToken() uint64 {
	return c.state.Token + 1
}

// apply must be called with mu held.
func (c *Controller) apply(e Event) {
	if IsStale(c.state, e) {
		log.Debug().
			Str("repository", c.state.RepoName).
			Uint64("latest", c.state.Token).
			Msgf("discarding stale %T", e)
		return
	}

	next := Reduce(c.state, e)
	next.HasMore = c.hasMore(len(next.Issues), PageSize)
	c.state = next
	c.pending = append(c.pending, next)
}

// unlock releases mu and hands the states applied so far to the listeners.
// Only one goroutine delivers at a time; the others leave their states in
// pending for it.
func (c *Controller) unlock() {
	if c.delivering {
		c.mu.Unlock()
		return
	}

	c.delivering = true
	for len(c.pending) > 0 {
		s := c.pending[0]
		c.pending = c.pending[1:]
		listeners := c.listeners
		c.mu.Unlock()

		for _, l := range listeners {
			l.Update(s)
		}

		c.mu.Lock()
	}
	c.delivering = false
	c.mu.Unlock()
}

// Mount decodes routeParam and loads the repository together with the
// first page of its issues.
func (c *Controller) Mount(ctx context.Context, routeParam string) error {
	name, decodeErr := DecodeRouteParam(routeParam)

	c.mu.Lock()
	c.route = routeParam
	token := c.nextToken()
	repoName := name
	if decodeErr != nil {
		repoName = routeParam
	}
	c.apply(MountStarted{RepoName: repoName, Token: token})
	if decodeErr != nil {
		c.apply(MountFailed{Token: token, Err: decodeErr})
		c.unlock()
		return decodeErr
	}
	filter := c.state.Filter
	c.unlock()

	log.Debug().
		Str("repository", name).
		Str("state", string(filter)).
		Msg("mounting repository view")

	return c.load(ctx, token, name, filter)
}

// Retry repeats the initial fetch after it failed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	failed := c.state.Failed()
	route := c.route
	c.mu.Unlock()

	if !failed {
		return nil
	}

	return c.Mount(ctx, route)
}

func (c *Controller) load(
	ctx context.Context,
	token uint64,
	name string,
	filter client.IssueState,
) error {
	var (
		repo   *client.Repository
		issues []*client.Issue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.client.GetRepository(gctx, name)
		if err != nil {
			return errors.Wrapf(err, "cannot load repository %s", name)
		}
		repo = r

		return nil
	})
	g.Go(func() error {
		list, err := c.client.GetIssues(gctx, &client.GetIssuesOptions{
			Repository: name,
			State:      filter,
			PerPage:    PageSize,
		})
		if err != nil {
			return errors.Wrapf(err, "cannot load issues of %s", name)
		}
		issues = list

		return nil
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.unlock()

	if err != nil {
		log.Error().Err(err).Str("repository", name).Msg("initial load failed")
		c.apply(MountFailed{Token: token, Err: err})
		return err
	}

	c.apply(MountSucceeded{
		Token:      token,
		Repository: repo,
		Issues:     issues,
	})

	return nil
}

// ChangeFilter switches the filter and refetches the first page with it.
// Selecting the current filter does nothing.
func (c *Controller) ChangeFilter(ctx context.Context, f client.IssueState) error {
	if !f.IsValid() {
		return errors.Wrapf(errcodes.ErrUnknownIssueState, "got %q", f)
	}

	c.mu.Lock()
	if !c.state.Ready() {
		c.mu.Unlock()
		return errcodes.ErrViewNotReady
	}
	if c.state.Filter == f {
		c.mu.Unlock()
		return nil
	}
	token := c.nextToken()
	c.apply(FilterChanged{Filter: f, Token: token})
	name := c.state.RepoName
	c.unlock()

	return c.fetch(ctx, token, name, f, 1)
}

// GetIssues fetches page with the current filter and replaces the shown
// issues with it.
func (c *Controller) GetIssues(ctx context.Context, page int) error {
	if page < 1 {
		return errors.Wrapf(errcodes.ErrInvalidPage, "got %d", page)
	}

	c.mu.Lock()
	if !c.state.Ready() {
		c.mu.Unlock()
		return errcodes.ErrViewNotReady
	}
	token := c.nextToken()
	c.apply(PageChanged{Page: page, Token: token})
	name := c.state.RepoName
	filter := c.state.Filter
	c.unlock()

	return c.fetch(ctx, token, name, filter, page)
}

// PriorPage is a no-op on the first page.
func (c *Controller) PriorPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanPriorPage() {
		c.mu.Unlock()
		return nil
	}
	page := c.state.Page - 1
	c.mu.Unlock()

	return c.GetIssues(ctx, page)
}

// NextPage is a no-op when the pager policy says the current page is the
// last one.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanNextPage() {
		c.mu.Unlock()
		return nil
	}
	page := c.state.Page + 1
	c.mu.Unlock()

	return c.GetIssues(ctx, page)
}

func (c *Controller) fetch(
	ctx context.Context,
	token uint64,
	name string,
	filter client.IssueState,
	page int,
) error {
	issues, err := c.client.GetIssues(ctx, &client.GetIssuesOptions{
		Repository: name,
		State:      filter,
		PerPage:    PageSize,
		Page:       page,
	})

	c.mu.Lock()
	defer c.unlock()

	if err != nil {
		err = errors.Wrapf(err, "cannot load page %d of %s", page, name)
		log.Error().Err(err).Msg("issues refetch failed")
		c.apply(FetchFailed{Token: token, Err: err})
		return err
	}

	c.apply(FetchSucceeded{
		Token:  token,
		Page:   page,
		Issues: issues,
	})

	return nil
}
