package paramutils

import (
	"os"
	"strings"

	"repoview/internal/configutils"
	"repoview/internal/domain/issueview"
	"repoview/internal/errcodes"
	"repoview/internal/gitutils"
	"repoview/internal/pkg/client"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type FlagRepo interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
	GetIntOrDefault(flag string, d int) int
}

func NewFlagRepo(flags *pflag.FlagSet) FlagRepo {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	return configutils.GetStringFlagOrDefault(fs.Flags, flag, d)
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	return configutils.GetBoolFlagOrDefault(fs.Flags, flag, d)
}

func (fs *PFlagSetWrapper) GetIntOrDefault(flag string, d int) int {
	return configutils.GetIntFlagOrDefault(fs.Flags, flag, d)
}

// IssueParams are the parameters shared by the commands reading a page of
// issues.
type IssueParams struct {
	Repository string
	State      client.IssueState
	Page       int
}

var (
	getRemoteRepositoryName = gitutils.GetRemoteRepositoryName
	getWorkingDir           = os.Getwd
)

// LoadConfig loads the global configuration, or the file named by the
// config flag, and merges the local configuration of the working directory
// over it.
func LoadConfig(flags FlagRepo) (*viper.Viper, error) {
	wd, err := getWorkingDir()
	if err != nil {
		wd = "."
	}

	return configutils.LoadConfigForPath(flags.GetStringOrDefault("config", ""), wd)
}

func ParseRepositoryArg(args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}

	return ""
}

// ResolveRepository picks the repository from, in order, the positional
// argument, the repository flag, the GitHub remote of the working directory
// and the default.repository configuration key.
func ResolveRepository(args []string, flags FlagRepo, v *viper.Viper) (string, error) {
	name := ParseRepositoryArg(args)
	if name == "" {
		name = flags.GetStringOrDefault("repository", "")
	}
	if name == "" {
		remote, err := getRemoteRepositoryName()
		if err != nil {
			log.Debug().Err(err).Msg("no repository found in the working directory")
		}
		name = remote
	}
	if name == "" && v != nil {
		name = v.GetString("default.repository")
	}

	if name == "" {
		return "", errcodes.ErrMissingRepository
	}

	err := issueview.ValidateRepositoryName(name)
	if err != nil {
		return "", err
	}

	return name, nil
}

func ParseState(flags FlagRepo) (client.IssueState, error) {
	return client.ParseIssueState(
		flags.GetStringOrDefault("state", string(issueview.DefaultFilter)),
	)
}

func FillIssueParams(args []string, flags FlagRepo, v *viper.Viper, params *IssueParams) error {
	name, err := ResolveRepository(args, flags, v)
	if err != nil {
		return err
	}

	state, err := ParseState(flags)
	if err != nil {
		return err
	}

	page := flags.GetIntOrDefault("page", 1)
	if page < 1 {
		return errcodes.ErrInvalidPage
	}

	params.Repository = name
	params.State = state
	params.Page = page

	return nil
}
