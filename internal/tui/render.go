package tui

import (
	"fmt"
	"regexp"
	"strings"

	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/client"

	"github.com/rivo/tview"
)

var labelColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

type issueRow struct {
	Number string
	Title  string
	Labels string
	Author string
	URL    string
}

func headerText(s issueview.State, icons map[string]string) string {
	lines := []string{
		fmt.Sprintf("[::u]%s Back to repositories[::-] (b)", icons["Back"]),
	}

	if s.Repository == nil {
		lines = append(lines, fmt.Sprintf("%s [::b]%s[::-]", icons["Repository"], tview.Escape(s.RepoName)))
		return strings.Join(lines, "\n")
	}

	r := s.Repository
	lines = append(lines,
		fmt.Sprintf(
			"%s %s / [::b]%s[::-]",
			icons["Owner"],
			tview.Escape(r.Owner.Login),
			tview.Escape(r.Name),
		),
	)
	if r.Description != "" {
		lines = append(lines, tview.Escape(r.Description))
	}

	return strings.Join(lines, "\n")
}

func labelBadge(l *client.Label, icon string) string {
	name := tview.Escape(l.Name)
	if !labelColorPattern.MatchString(l.Color) {
		return fmt.Sprintf("%s %s", icon, name)
	}

	return fmt.Sprintf("[#%s]%s %s[-]", strings.ToLower(l.Color), icon, name)
}

func issueRows(s issueview.State, icons map[string]string) []*issueRow {
	rows := make([]*issueRow, 0, len(s.Issues))
	for _, i := range s.Issues {
		badges := make([]string, 0, len(i.Labels))
		for _, l := range i.Labels {
			badges = append(badges, labelBadge(l, icons["Label"]))
		}

		rows = append(rows, &issueRow{
			Number: fmt.Sprintf("%s%d", icons["Issue"], i.Number),
			Title:  tview.Escape(i.Title),
			Labels: strings.Join(badges, " "),
			Author: fmt.Sprintf("%s %s", icons["User"], tview.Escape(i.User.Login)),
			URL:    i.URL,
		})
	}

	return rows
}

func pagerEnabled(s issueview.State) (prior, next bool) {
	return s.CanPriorPage(), s.CanNextPage()
}

func errorMessage(err error) string {
	switch issueview.Classify(err) {
	case issueview.KindNone:
		return ""
	case issueview.KindNotFound:
		return fmt.Sprintf("The repository could not be loaded: %v", err)
	case issueview.KindMalformedIdentifier:
		return fmt.Sprintf("The repository identifier is invalid: %v", err)
	}

	return fmt.Sprintf("Network failure: %v", err)
}

func statusText(s issueview.State, icons map[string]string) string {
	switch {
	case s.Loading:
		return fmt.Sprintf("%s Loading %s...", icons["Loading"], tview.Escape(s.RepoName))
	case s.Failed():
		return fmt.Sprintf(
			"[red]%s %s[-] Press r to retry.",
			icons["Error"],
			tview.Escape(errorMessage(s.Err)),
		)
	case s.Refreshing:
		return fmt.Sprintf("%s Loading %s issues...", icons["Loading"], s.Filter)
	case s.RefreshErr != nil:
		return fmt.Sprintf(
			"[red]%s %s[-]",
			icons["Error"],
			tview.Escape(errorMessage(s.RefreshErr)),
		)
	case len(s.Issues) == 0:
		return fmt.Sprintf("Page %d, no %s issues", s.Page, s.Filter)
	}

	return fmt.Sprintf("Page %d, %d %s issues", s.Page, len(s.Issues), s.Filter)
}
