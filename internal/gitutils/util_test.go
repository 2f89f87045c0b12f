package gitutils

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_extractRepositoryTokens(t *testing.T) {
	tests := []struct {
		uri  string
		want []string
	}{
		{"git@github.com:facebook/react.git", []string{"github.com", "facebook", "react"}},
		{"git@github.com:facebook/react", []string{"github.com", "facebook", "react"}},
		{"https://github.com/facebook/react.git", []string{"github.com", "facebook", "react"}},
		{"https://github.com/facebook/react", []string{"github.com", "facebook", "react"}},
		{"https://user@github.com/facebook/react.git", []string{"github.com", "facebook", "react"}},
		{"ssh://git@github.com:22/facebook/react.git", []string{"github.com", "facebook", "react"}},
		{"git@bitbucket.org:owner/repo.git", []string{"bitbucket.org", "owner", "repo"}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := extractRepositoryTokens(tt.uri)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("fails on an empty string", func(t *testing.T) {
		_, err := extractRepositoryTokens("")
		assert.ErrorIs(t, err, ErrUnableToParseRemoteRepositoryURI)
	})

	t.Run("fails on a local path", func(t *testing.T) {
		_, err := extractRepositoryTokens("/srv/git/react")
		assert.ErrorIs(t, err, ErrUnableToParseRemoteRepositoryURI)
	})
}

func Test_getRemoteRepositoryNames(t *testing.T) {
	t.Run("fails when cannot get remotes", func(t *testing.T) {
		vErr := errors.New("remote err")
		_, err := getRemoteRepositoryNames(&MockGitRepository{ErrorValue: vErr})
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("keeps github remotes only", func(t *testing.T) {
		names, err := getRemoteRepositoryNames(&MockGitRepository{
			RemoteURLsValue: []string{
				"git@bitbucket.org:owner/repo.git",
				"not a uri",
				"https://github.com/facebook/react.git",
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"facebook/react"}, names)
	})
}

func TestGetRemoteRepositoryName(t *testing.T) {
	oldOpenLocalRepo := openLocalRepo
	defer func() { openLocalRepo = oldOpenLocalRepo }()

	t.Run("fails when the repository cannot be opened", func(t *testing.T) {
		openLocalRepo = func() (gitRepository, error) { return nil, ErrCannotGetLocalRepository }

		_, err := GetRemoteRepositoryName()
		assert.ErrorIs(t, err, ErrCannotGetLocalRepository)
	})

	t.Run("fails without a github remote", func(t *testing.T) {
		openLocalRepo = func() (gitRepository, error) {
			return &MockGitRepository{RemoteURLsValue: []string{"git@bitbucket.org:o/r.git"}}, nil
		}

		_, err := GetRemoteRepositoryName()
		assert.ErrorIs(t, err, ErrNoGithubRemote)
	})

	t.Run("prefers origin", func(t *testing.T) {
		openLocalRepo = func() (gitRepository, error) {
			return &repository{r: &MockGoGitRepository{
				RemotesValue: []*git.Remote{
					git.NewRemote(nil, &config.RemoteConfig{
						Name: "upstream",
						URLs: []string{"git@github.com:facebook/react.git"},
					}),
					git.NewRemote(nil, &config.RemoteConfig{
						Name: "origin",
						URLs: []string{"git@github.com:someone/react.git"},
					}),
				},
			}}, nil
		}

		name, err := GetRemoteRepositoryName()
		assert.NoError(t, err)
		assert.Equal(t, "someone/react", name)
	})
}
