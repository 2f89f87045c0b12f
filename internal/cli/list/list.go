package list

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"repoview/internal/cli/paramutils"
	"repoview/internal/cli/utils"
	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/client"
	"repoview/internal/pkg/github"

	"github.com/gosuri/uilive"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}

	params := &paramutils.IssueParams{}
	err = paramutils.FillIssueParams(args, flags, v, params)
	if err != nil {
		return err
	}

	c, err := github.NewFromConfig(v)
	if err != nil {
		return err
	}

	return execute(cmd.Context(), c, params, os.Stdin, cmd.OutOrStdout())
}

func headerLine(r *client.Repository) string {
	if r.Description == "" {
		return fmt.Sprintf("%s (@%s)", r.FullName, r.Owner.Login)
	}

	return fmt.Sprintf("%s (@%s): %s", r.FullName, r.Owner.Login, r.Description)
}

func labelNames(labels []*client.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}

	return strings.Join(names, ", ")
}

func addIssueRows(table *uitable.Table, issues []*client.Issue) {
	for _, v := range issues {
		table.AddRow(
			v.Number,
			v.Title,
			"@"+v.User.Login,
			labelNames(v.Labels),
			v.URL,
		)
	}
}

func execute(
	ctx context.Context,
	c client.Client,
	params *paramutils.IssueParams,
	in io.Reader,
	out io.Writer,
) error {
	ctl := issueview.NewController(c, issueview.WithFilter(params.State))
	err := ctl.Mount(ctx, issueview.EncodeRouteParam(params.Repository))
	if err != nil {
		return err
	}
	if params.Page > 1 {
		err = ctl.GetIssues(ctx, params.Page)
		if err != nil {
			return err
		}
	}

	s := ctl.State()
	fmt.Fprintln(out, headerLine(s.Repository))

	reader := bufio.NewReader(in)
	writer := uilive.New()
	writer.Out = out
	writer.Start()
	defer writer.Stop()

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("#", "TITLE", "AUTHOR", "LABELS", "URL")
	table.AddRow("-", "-----", "------", "------", "---")

	for {
		addIssueRows(table, s.Issues)
		fmt.Fprintln(writer, table.String())

		if !s.CanNextPage() {
			break
		}

		fmt.Fprintln(writer.Newline(), "Press Enter to show more...")
		_, _, err = reader.ReadRune()
		if err != nil {
			break
		}

		// Clear the line the Enter key left behind
		clearLine(writer.Out)
		fmt.Fprintln(writer, table.String())
		fmt.Fprintln(writer.Newline(), "Loading...")

		err = ctl.NextPage(ctx)
		if err != nil {
			return err
		}
		s = ctl.State()
	}

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [repository]",
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		Short:   "List issues",
		Long:    `Lists the issues of a repository, one page at a time`,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Int("page", 1, "page to start from")

	return cmd
}

func clearLine(out io.Writer) {
	var clear = fmt.Sprintf("%c[%dA%c[2K", 27, 1, 27)
	_, _ = fmt.Fprint(out, clear)
}
