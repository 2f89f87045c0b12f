package tui

import (
	"context"

	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/client"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

var issueTableHeaders = []string{"#", "TITLE", "LABELS", "AUTHOR"}

// pageDeps are the hooks a page uses to reach the application.
type pageDeps struct {
	bus             *EventBus
	icons           map[string]string
	queueUpdateDraw func(func())
	spawn           func(func())
	setFocus        func(tview.Primitive)
}

type repositoryPage struct {
	*tview.Flex
	header *tview.TextView
	filter *tview.DropDown
	table  *tview.Table
	prior  *tview.Button
	next   *tview.Button
	status *tview.TextView

	deps   *pageDeps
	ctl    *issueview.Controller
	ctx    context.Context
	cancel context.CancelFunc

	// Only touched on the UI goroutine.
	state    issueview.State
	updating bool
}

func newRepositoryPage(
	ctx context.Context,
	ctl *issueview.Controller,
	deps *pageDeps,
) *repositoryPage {
	pageCtx, cancel := context.WithCancel(ctx)
	p := &repositoryPage{
		header: tview.NewTextView().SetDynamicColors(true),
		filter: tview.NewDropDown().SetLabel("State: "),
		table:  tview.NewTable(),
		status: tview.NewTextView().SetDynamicColors(true),
		deps:   deps,
		ctl:    ctl,
		ctx:    pageCtx,
		cancel: cancel,
		state:  ctl.State(),
	}

	options := make([]string, 0, len(client.IssueStates))
	for _, s := range client.IssueStates {
		options = append(options, string(s))
	}
	p.filter.SetOptions(options, nil)
	p.filter.SetCurrentOption(filterIndex(p.state.Filter))
	p.filter.SetSelectedFunc(p.onFilterSelected)

	p.table.
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedFunc(func(row, column int) {
			p.openSelected()
		})

	p.prior = tview.NewButton(deps.icons["Prior"] + " Prior").SetSelectedFunc(p.priorPage)
	p.next = tview.NewButton("Next " + deps.icons["Next"]).SetSelectedFunc(p.nextPage)

	pager := tview.NewFlex().
		AddItem(p.prior, 12, 0, false).
		AddItem(nil, 0, 1, false).
		AddItem(p.next, 12, 0, false)

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.header, 3, 0, false).
		AddItem(p.filter, 1, 0, false).
		AddItem(p.table, 0, 1, true).
		AddItem(pager, 1, 0, false).
		AddItem(p.status, 1, 0, false)
	p.Flex.SetInputCapture(p.handleKey)

	ctl.Subscribe(issueview.ListenerFunc(func(s issueview.State) {
		deps.queueUpdateDraw(func() { p.update(s) })
	}))

	p.update(p.state)

	return p
}

func filterIndex(f client.IssueState) int {
	for i, s := range client.IssueStates {
		if s == f {
			return i
		}
	}

	return 0
}

// mount loads the repository named by the percent-encoded route.
func (p *repositoryPage) mount(route string) {
	p.deps.spawn(func() {
		err := p.ctl.Mount(p.ctx, route)
		if err != nil {
			log.Debug().Err(err).Str("route", route).Msg("mount failed")
		}
	})
}

func (p *repositoryPage) close() {
	p.cancel()
}

func (p *repositoryPage) update(s issueview.State) {
	if p.ctx.Err() != nil {
		return
	}

	p.updating = true
	defer func() { p.updating = false }()

	p.state = s
	icons := p.deps.icons

	p.header.SetText(headerText(s, icons))

	if i := filterIndex(s.Filter); i != currentOption(p.filter) {
		p.filter.SetCurrentOption(i)
	}

	p.drawTable(s)

	prior, next := pagerEnabled(s)
	setButtonEnabled(p.prior, prior)
	setButtonEnabled(p.next, next)

	p.status.SetText(statusText(s, icons))
}

func currentOption(d *tview.DropDown) int {
	i, _ := d.GetCurrentOption()
	return i
}

func setButtonEnabled(b *tview.Button, enabled bool) {
	if enabled {
		b.SetLabelColor(NormalColor)
		return
	}

	b.SetLabelColor(DisabledColor)
}

func (p *repositoryPage) drawTable(s issueview.State) {
	p.table.Clear()

	for i, h := range issueTableHeaders {
		p.table.SetCell(0, i,
			tview.NewTableCell(pad(h)).
				SetSelectable(false).
				SetStyle(tcell.StyleDefault.Bold(true)),
		)
	}

	if s.Loading || s.Failed() {
		return
	}

	rows := issueRows(s, p.deps.icons)
	if len(rows) == 0 {
		p.table.SetCell(1, 0,
			tview.NewTableCell(pad("No issues")).SetSelectable(false),
		)
		return
	}

	for i, r := range rows {
		values := []string{r.Number, r.Title, r.Labels, r.Author}
		for j, v := range values {
			cell := tview.NewTableCell(pad(v)).SetReference(r.URL)
			if j == 1 {
				cell.SetExpansion(1)
			}
			p.table.SetCell(i+1, j, cell)
		}
	}
	p.table.Select(1, 0)
}

func (p *repositoryPage) onFilterSelected(text string, index int) {
	if p.updating || index < 0 || index >= len(client.IssueStates) {
		return
	}

	f := client.IssueStates[index]
	if !p.state.Ready() || f == p.state.Filter {
		return
	}

	p.deps.spawn(func() {
		err := p.ctl.ChangeFilter(p.ctx, f)
		if err != nil {
			log.Debug().Err(err).Str("state", string(f)).Msg("filter change failed")
		}
	})
}

func (p *repositoryPage) priorPage() {
	if !p.state.CanPriorPage() {
		return
	}

	p.deps.spawn(func() {
		err := p.ctl.PriorPage(p.ctx)
		if err != nil {
			log.Debug().Err(err).Msg("prior page failed")
		}
	})
}

func (p *repositoryPage) nextPage() {
	if !p.state.CanNextPage() {
		return
	}

	p.deps.spawn(func() {
		err := p.ctl.NextPage(p.ctx)
		if err != nil {
			log.Debug().Err(err).Msg("next page failed")
		}
	})
}

func (p *repositoryPage) retry() {
	if !p.state.Failed() {
		return
	}

	p.deps.spawn(func() {
		err := p.ctl.Retry(p.ctx)
		if err != nil {
			log.Debug().Err(err).Msg("retry failed")
		}
	})
}

func (p *repositoryPage) selectedURL() string {
	row, _ := p.table.GetSelection()
	cell := p.table.GetCell(row, 0)
	if cell == nil {
		return ""
	}

	url, _ := cell.GetReference().(string)

	return url
}

func (p *repositoryPage) openSelected() {
	if url := p.selectedURL(); url != "" {
		p.deps.bus.Publish(EventIssueOpenRequested, url)
	}
}

func (p *repositoryPage) back() {
	p.close()
	p.deps.bus.Publish(EventBackRequested, nil)
}

func (p *repositoryPage) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if p.filter.HasFocus() {
			p.deps.setFocus(p.table)
			return nil
		}
		p.back()
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case '[', 'h':
		p.priorPage()
	case ']', 'l':
		p.nextPage()
	case 'f':
		p.deps.setFocus(p.filter)
	case 'r':
		p.retry()
	case 'b':
		p.back()
	case 'q':
		p.deps.bus.Publish(EventQuitRequested, nil)
	default:
		return event
	}

	return nil
}
