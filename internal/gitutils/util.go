package gitutils

import (
	"regexp"
	"strings"

	"repoview/internal/pkg/fs"

	"github.com/pkg/errors"
)

var (
	ErrCannotGetLocalRepository         = errors.New("cannot get local repository")
	ErrUnableToParseRemoteRepositoryURI = errors.New("unable to parse remote repository URI")
	ErrNoGithubRemote                   = errors.New("no remote points to github.com")
)

var remotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git@([^:]+):([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^(?:https?|ssh|git)://(?:[^@/]+@)?([^/:]+)(?::\d+)?/([^/]+)/([^/]+?)(?:\.git)?/?$`),
}

var getWorkingDir = func(fs fs.Filesystem) (string, error) {
	return fs.Getwd()
}

var openLocalRepo = func() (gitRepository, error) {
	wd, err := getWorkingDir(fs.OS{})
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	r, err := openRepo(wd)
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	return &repository{r: r}, nil
}

// extractRepositoryTokens splits an ssh or http remote URI into host,
// owner and name.
var extractRepositoryTokens = func(uri string) ([]string, error) {
	for _, r := range remotePatterns {
		m := r.FindStringSubmatch(strings.TrimSpace(uri))
		if len(m) == 4 {
			return m[1:], nil
		}
	}

	return nil, ErrUnableToParseRemoteRepositoryURI
}

var getRemoteRepositoryNames = func(r gitRepository) ([]string, error) {
	urls, err := r.GetRemoteURLs()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, u := range urls {
		m, err := extractRepositoryTokens(u)
		if err != nil {
			continue
		}
		if !strings.EqualFold(m[0], "github.com") {
			continue
		}

		names = append(names, m[1]+"/"+m[2])
	}

	return names, nil
}

// GetRemoteRepositoryName returns the owner/name of the GitHub remote of
// the repository in the working directory, preferring origin.
func GetRemoteRepositoryName() (string, error) {
	r, err := openLocalRepo()
	if err != nil {
		return "", err
	}

	names, err := getRemoteRepositoryNames(r)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoGithubRemote
	}

	return names[0], nil
}
