package tui

import (
	"context"

	"repoview/internal/domain/issueview"
	"repoview/internal/persistance"
	"repoview/internal/pkg/browser"
	"repoview/internal/pkg/client"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	listPageName       = "repositories"
	repositoryPageName = "repository"
)

type Options struct {
	Client  client.Client
	Visited persistance.Repo
	Config  *viper.Viper
	// Filter is the issue state a repository opens with.
	Filter client.IssueState
}

type Tui struct {
	app     *tview.Application
	pages   *tview.Pages
	bus     *EventBus
	deps    *pageDeps
	client  client.Client
	visited persistance.Repo
	filter  client.IssueState

	ctx    context.Context
	cancel context.CancelFunc

	listPage *repositoryListPage
	repoPage *repositoryPage

	openURL func(string) error
}

func NewTui(o *Options) *Tui {
	config := o.Config
	if config == nil {
		config = viper.New()
	}
	filter := o.Filter
	if !filter.IsValid() {
		filter = issueview.DefaultFilter
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Tui{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		bus:     NewEventBus(),
		client:  o.Client,
		visited: o.Visited,
		filter:  filter,
		ctx:     ctx,
		cancel:  cancel,
		openURL: browser.Open,
	}

	t.deps = &pageDeps{
		bus:   t.bus,
		icons: initIconsMap(config),
		queueUpdateDraw: func(f func()) {
			t.app.QueueUpdateDraw(f)
		},
		spawn: func(f func()) { go f() },
		setFocus: func(p tview.Primitive) {
			t.app.SetFocus(p)
		},
	}

	t.bus.Subscribe(EventRepositoryOpenRequested, func(data interface{}) {
		if route, ok := data.(string); ok {
			t.openRepository(route)
		}
	})
	t.bus.Subscribe(EventBackRequested, func(interface{}) {
		t.showRepositories()
	})
	t.bus.Subscribe(EventIssueOpenRequested, func(data interface{}) {
		url, _ := data.(string)
		err := t.openURL(url)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("cannot open issue")
		}
	})
	t.bus.Subscribe(EventQuitRequested, func(interface{}) {
		t.app.Stop()
	})

	t.listPage = newRepositoryListPage(t.visited, t.deps)
	t.pages.AddPage(listPageName, t.listPage, true, true)

	return t
}

// openRepository shows the repository named by the percent-encoded route
// and records it as visited when it decodes.
func (t *Tui) openRepository(route string) {
	if name, err := issueview.DecodeRouteParam(route); err == nil {
		err = t.visited.AddVisited(name)
		if err != nil {
			log.Error().Err(err).Str("repository", name).Msg("cannot record visit")
		}
	}

	if t.repoPage != nil {
		t.repoPage.close()
	}

	ctl := issueview.NewController(t.client, issueview.WithFilter(t.filter))
	t.repoPage = newRepositoryPage(t.ctx, ctl, t.deps)
	t.pages.AddPage(repositoryPageName, t.repoPage, true, true)
	t.pages.SwitchToPage(repositoryPageName)
	t.deps.setFocus(t.repoPage.table)

	t.repoPage.mount(route)
}

func (t *Tui) showRepositories() {
	if t.repoPage != nil {
		t.repoPage.close()
		t.pages.RemovePage(repositoryPageName)
		t.repoPage = nil
	}

	t.listPage.refresh()
	t.pages.SwitchToPage(listPageName)
	t.deps.setFocus(t.listPage.table)
}

// Start runs the application until it quits. An empty route starts on the
// repository listing.
func (t *Tui) Start(route string) error {
	defer t.cancel()

	t.app.SetRoot(t.pages, true).EnableMouse(true)
	if route != "" {
		t.openRepository(route)
	} else {
		t.showRepositories()
	}

	return t.app.Run()
}
