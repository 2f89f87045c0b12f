package open

import (
	"context"
	"fmt"
	"io"

	"repoview/internal/cli/paramutils"
	"repoview/internal/cli/utils"
	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/browser"
	"repoview/internal/pkg/client"
	"repoview/internal/pkg/github"

	"github.com/spf13/cobra"
)

type openCmdParams struct {
	paramutils.IssueParams
	PrintOnly bool
}

var (
	openInBrowser = browser.Open
	promptIssue   = utils.PromptIssueSelect
)

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}

	params := &openCmdParams{PrintOnly: flags.GetBoolOrDefault("print", false)}
	err = paramutils.FillIssueParams(args, flags, v, &params.IssueParams)
	if err != nil {
		return err
	}

	c, err := github.NewFromConfig(v)
	if err != nil {
		return err
	}

	return execute(cmd.Context(), c, params, cmd.OutOrStdout())
}

func loadPage(ctx context.Context, c client.Client, params *openCmdParams) ([]*client.Issue, error) {
	ctl := issueview.NewController(c, issueview.WithFilter(params.State))
	err := ctl.Mount(ctx, issueview.EncodeRouteParam(params.Repository))
	if err != nil {
		return nil, err
	}

	if params.Page > 1 {
		err = ctl.GetIssues(ctx, params.Page)
		if err != nil {
			return nil, err
		}
	}

	return ctl.State().Issues, nil
}

func execute(ctx context.Context, c client.Client, params *openCmdParams, out io.Writer) error {
	issues, err := loadPage(ctx, c, params)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintf(out, "%s has no %s issues on page %d\n", params.Repository, params.State, params.Page)
		return nil
	}

	issue, err := promptIssue(issues)
	if err != nil {
		return err
	}
	if issue == nil {
		return nil
	}

	if params.PrintOnly {
		fmt.Fprintln(out, issue.URL)
		return nil
	}

	return openInBrowser(issue.URL)
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [repository]",
		Aliases: []string{"o", "op"},
		Args:    cobra.MaximumNArgs(1),
		Short:   "Open an issue",
		Long:    `Prompts for one issue of a page and opens its web page`,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Int("page", 1, "page to choose from")
	cmd.Flags().Bool("print", false, "print the issue URL")

	return cmd
}
