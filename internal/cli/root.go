package cli

import (
	"fmt"
	"io"
	"os"

	listcmd "repoview/internal/cli/list"
	opencmd "repoview/internal/cli/open"
	"repoview/internal/cli/paramutils"
	"repoview/internal/cli/utils"
	"repoview/internal/domain/issueview"
	"repoview/internal/errcodes"
	"repoview/internal/logutils"
	"repoview/internal/persistance"
	"repoview/internal/pkg/github"
	"repoview/internal/systemcodes"
	"repoview/internal/tui"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logFile io.Closer

var startTui = func(o *tui.Options, route string) error {
	return tui.NewTui(o).Start(route)
}

func setupLogging(cmd *cobra.Command) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}

	logFile, err = logutils.Setup(
		v.GetString("log.file"),
		flags.GetStringOrDefault("log-level", v.GetString("log.level")),
	)

	return err
}

// routeFor resolves the repository to open. Without one the TUI starts on
// the repository listing.
func routeFor(name func() (string, error)) (string, error) {
	repo, err := name()
	if errors.Is(err, errcodes.ErrMissingRepository) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return issueview.EncodeRouteParam(repo), nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := paramutils.LoadConfig(flags)
	if err != nil {
		return err
	}

	filter, err := paramutils.ParseState(flags)
	if err != nil {
		return err
	}

	route, err := routeFor(func() (string, error) {
		return paramutils.ResolveRepository(args, flags, v)
	})
	if err != nil {
		return err
	}

	c, err := github.NewFromConfig(v)
	if err != nil {
		return err
	}

	log.Info().Str("route", route).Str("state", string(filter)).Msg("starting")

	return startTui(&tui.Options{
		Client:  c,
		Visited: persistance.GetRepo(),
		Config:  v,
		Filter:  filter,
	}, route)
}

func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "repoview [repository]",
		Short:   "repoview terminal viewer for repository issues",
		Long:    `Terminal viewer for the issues of a repository, page by page.`,
		Version: fmt.Sprintf("%v, commit %v, built at %v", version, commit, date),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			err := setupLogging(cmd)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				os.Exit(systemcodes.ErrorCodeGeneric)
			}
		},
		Run: utils.RunCommandWrapper(runCmd),
	}

	rootCmd.AddCommand(
		listcmd.New(),
		opencmd.New(),
	)

	rootCmd.PersistentFlags().StringP("repository", "r", "", "repository in form of owner/repo")
	rootCmd.PersistentFlags().StringP("state", "s", "", "issue state, values - (open, closed, all)")
	rootCmd.PersistentFlags().String("config", "", "config path")
	rootCmd.PersistentFlags().String("log-level", "", "log level, values - (debug, info, warn, error)")

	return rootCmd
}

func closeLogFile() {
	if logFile == nil {
		return
	}

	err := logFile.Close()
	if err != nil {
		log.Debug().Err(err).Msg("cannot close log file")
	}
	logFile = nil
}

func Execute() {
	err := New().Execute()
	closeLogFile()
	if err != nil {
		os.Exit(systemcodes.ErrorCodeGeneric)
	}
}
