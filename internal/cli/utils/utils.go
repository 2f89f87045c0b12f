package utils

import (
	"fmt"
	"os"

	"repoview/internal/domain/issueview"
	"repoview/internal/pkg/client"
	"repoview/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

type PromptIssue struct {
	Issue *client.Issue
	Title string
}

var askOne = survey.AskOne

func maxAuthorLength(issues []*client.Issue, limit int) int {
	maxLen := 0
	for _, i := range issues {
		if l := len(i.User.Login); l > maxLen {
			maxLen = l
		}
	}

	if limit > 0 && maxLen > limit {
		return limit
	}

	return maxLen
}

func getPromptIssueSlice(issues []*client.Issue) []*PromptIssue {
	maxLen := maxAuthorLength(issues, 20)
	format := fmt.Sprintf("#%%d: %%-%ds %%s", maxLen+2)
	options := make([]*PromptIssue, 0, len(issues))
	for _, i := range issues {
		options = append(options, &PromptIssue{
			Issue: i,
			Title: fmt.Sprintf(format, i.Number, "@"+i.User.Login, i.Title),
		})
	}

	return options
}

// PromptIssueSelect asks for one of issues and returns nil when the prompt
// is aborted.
func PromptIssueSelect(issues []*client.Issue) (*client.Issue, error) {
	prompts := getPromptIssueSlice(issues)

	var answer string
	options := make([]string, 0, len(prompts))
	for _, v := range prompts {
		options = append(options, v.Title)
	}
	prompt := &survey.Select{
		Message:  "Open issue page",
		Options:  options,
		PageSize: 10,
	}
	err := askOne(prompt, &answer)
	if err != nil {
		return nil, err
	}

	for _, v := range prompts {
		if v.Title == answer {
			return v.Issue, nil
		}
	}

	return nil, nil
}

// ExitCode maps err onto the exit code of the process.
func ExitCode(err error) int {
	switch issueview.Classify(err) {
	case issueview.KindNotFound:
		return systemcodes.ErrorCodeNotFound
	case issueview.KindMalformedIdentifier:
		return systemcodes.ErrorCodeInvalidRepository
	}

	return systemcodes.ErrorCodeGeneric
}

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

var exit = os.Exit

func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			exit(ExitCode(err))
		}
	}
}
