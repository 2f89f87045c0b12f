package tui

import (
	"strings"

	"repoview/internal/domain/issueview"
	"repoview/internal/persistance"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const visitedTimeFormat = "2006-01-02 15:04"

type repositoryListPage struct {
	*tview.Flex
	table   *tview.Table
	input   *tview.InputField
	message *tview.TextView

	deps    *pageDeps
	visited persistance.Repo
}

func newRepositoryListPage(visited persistance.Repo, deps *pageDeps) *repositoryListPage {
	p := &repositoryListPage{
		table:   tview.NewTable(),
		input:   tview.NewInputField(),
		message: tview.NewTextView().SetDynamicColors(true),
		deps:    deps,
		visited: visited,
	}

	p.table.
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedFunc(func(row, column int) {
			if name := p.selectedName(); name != "" {
				p.open(name)
			}
		})
	p.table.SetBorder(true).SetTitle(" Repositories ")

	p.input.
		SetLabel("Add repository: ").
		SetPlaceholder("owner/name").
		SetDoneFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyEnter:
				p.add(p.input.GetText())
			case tcell.KeyEscape:
				p.input.SetText("")
				deps.setFocus(p.table)
			}
		})

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.table, 0, 1, true).
		AddItem(p.input, 1, 0, false).
		AddItem(p.message, 1, 0, false)
	p.Flex.SetInputCapture(p.handleKey)

	p.refresh()

	return p
}

func (p *repositoryListPage) refresh() {
	p.table.Clear()
	p.table.SetCell(0, 0, tview.NewTableCell(pad("REPOSITORY")).SetSelectable(false).
		SetStyle(tcell.StyleDefault.Bold(true)).SetExpansion(1))
	p.table.SetCell(0, 1, tview.NewTableCell(pad("LAST VISITED")).SetSelectable(false).
		SetStyle(tcell.StyleDefault.Bold(true)))

	visited, err := p.visited.GetVisited()
	if err != nil {
		log.Error().Err(err).Msg("cannot load visited repositories")
		p.showError("Cannot load visited repositories: " + err.Error())
		return
	}

	if len(visited) == 0 {
		p.table.SetCell(1, 0, tview.NewTableCell(pad("Press a to add a repository")).SetSelectable(false))
		return
	}

	for i, v := range visited {
		p.table.SetCell(i+1, 0, tview.NewTableCell(pad(tview.Escape(v.Name))).SetReference(v.Name))
		p.table.SetCell(i+1, 1, tview.NewTableCell(pad(v.LastVisited.Local().Format(visitedTimeFormat))))
	}
	p.table.Select(1, 0)
}

func (p *repositoryListPage) showError(msg string) {
	p.message.SetText("[red]" + tview.Escape(msg) + "[-]")
}

func (p *repositoryListPage) selectedName() string {
	row, _ := p.table.GetSelection()
	name, _ := p.table.GetCell(row, 0).GetReference().(string)

	return name
}

func (p *repositoryListPage) add(input string) {
	name := strings.TrimSpace(input)
	err := issueview.ValidateRepositoryName(name)
	if err != nil {
		p.showError(err.Error())
		return
	}

	p.input.SetText("")
	p.message.SetText("")
	p.open(name)
}

func (p *repositoryListPage) open(name string) {
	p.deps.bus.Publish(EventRepositoryOpenRequested, issueview.EncodeRouteParam(name))
}

func (p *repositoryListPage) forgetSelected() {
	name := p.selectedName()
	if name == "" {
		return
	}

	err := p.visited.RemoveVisited(name)
	if err != nil {
		log.Error().Err(err).Str("repository", name).Msg("cannot forget repository")
		p.showError(err.Error())
		return
	}

	p.refresh()
}

func (p *repositoryListPage) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if p.input.HasFocus() || event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'a':
		p.deps.setFocus(p.input)
	case 'd':
		p.forgetSelected()
	case 'q':
		p.deps.bus.Publish(EventQuitRequested, nil)
	default:
		return event
	}

	return nil
}
