package gitutils

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

const defaultRemote = "origin"

type goGitRepository interface {
	Remotes() ([]*git.Remote, error)
}

type gitRepository interface {
	GetRemoteURLs() ([]string, error)
}

type repository struct {
	r goGitRepository
}

var openRepo = func(path string) (goGitRepository, error) {
	return OpenRepoRecursively(path)
}

// OpenRepoRecursively opens the repository containing input, walking up
// the directory tree until one is found.
func OpenRepoRecursively(input string) (*git.Repository, error) {
	dir := filepath.Clean(input)
	for {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, errors.Errorf("could not open a repository at %s or above", input)
}

// GetRemoteURLs lists the URLs of every remote, those of origin first.
func (r *repository) GetRemoteURLs() ([]string, error) {
	remotes, err := r.r.Remotes()
	if err != nil {
		return nil, err
	}

	var first, rest []string
	for _, re := range remotes {
		cfg := re.Config()
		if cfg.Name == defaultRemote {
			first = append(first, cfg.URLs...)
			continue
		}
		rest = append(rest, cfg.URLs...)
	}

	return append(first, rest...), nil
}
