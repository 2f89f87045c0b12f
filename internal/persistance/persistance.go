package persistance

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"repoview/internal/pkg/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const defaultStateDir = "~/.config/repoview"

type RepoInfo struct {
	Name        string    `json:"name"`
	LastVisited time.Time `json:"lastVisited"`
}

type state struct {
	Visited []*RepoInfo `json:"visited,omitempty"`
}

// Repo remembers the repositories a user has opened.
type Repo interface {
	AddVisited(name string) error
	GetVisited() ([]*RepoInfo, error)
	RemoveVisited(name string) error
}

var now = time.Now

type XDGPersistanceRepo struct {
	dir string
	fs  fs.Filesystem
	mu  sync.Mutex
	s   *state
}

// New stores the state file in dir. An empty dir selects ~/.config/repoview.
func New(dir string) *XDGPersistanceRepo {
	if dir == "" {
		dir = defaultStateDir
	}

	return &XDGPersistanceRepo{dir: dir, fs: fs.OS{}, s: &state{}}
}

func (repo *XDGPersistanceRepo) stateDir() (string, error) {
	return homedir.Expand(repo.dir)
}

func (repo *XDGPersistanceRepo) createConfigDirIfNotExist() error {
	dirPath, err := repo.stateDir()
	if err != nil {
		return err
	}

	return repo.fs.MkdirAll(dirPath, 0o700)
}

func (repo *XDGPersistanceRepo) load() error {
	dirPath, err := repo.stateDir()
	if err != nil {
		return err
	}

	data, err := repo.fs.ReadFile(filepath.Join(dirPath, "state"))
	if os.IsNotExist(err) {
		repo.s = &state{}
		return nil
	}
	if err != nil {
		return err
	}

	s := &state{}
	err = json.Unmarshal(data, s)
	if err != nil {
		return errors.Wrap(err, "cannot load state file")
	}
	repo.s = s

	return nil
}

func (repo *XDGPersistanceRepo) save() error {
	err := repo.createConfigDirIfNotExist()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(repo.s, "", "  ")
	if err != nil {
		return err
	}

	dirPath, err := repo.stateDir()
	if err != nil {
		return err
	}

	return repo.fs.WriteFile(filepath.Join(dirPath, "state"), data, 0o644)
}

func (repo *XDGPersistanceRepo) index(name string) int {
	return slices.IndexFunc(
		repo.s.Visited,
		func(v *RepoInfo) bool { return v.Name == name },
	)
}

// GetVisited lists the visited repositories, the most recent first.
func (repo *XDGPersistanceRepo) GetVisited() ([]*RepoInfo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	err := repo.load()
	if err != nil {
		return nil, err
	}

	visited := slices.Clone(repo.s.Visited)
	slices.SortStableFunc(visited, func(a, b *RepoInfo) bool {
		return a.LastVisited.After(b.LastVisited)
	})

	return visited, nil
}

// AddVisited records name as visited now. A known name only has its visit
// time updated.
func (repo *XDGPersistanceRepo) AddVisited(name string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	err := repo.load()
	if err != nil {
		return err
	}

	info := &RepoInfo{Name: name, LastVisited: now()}
	if i := repo.index(name); i != -1 {
		repo.s.Visited = slices.Replace(repo.s.Visited, i, i+1, info)
	} else {
		repo.s.Visited = append(repo.s.Visited, info)
	}

	return repo.save()
}

// RemoveVisited forgets name. Unknown names are ignored.
func (repo *XDGPersistanceRepo) RemoveVisited(name string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	err := repo.load()
	if err != nil {
		return err
	}

	i := repo.index(name)
	if i == -1 {
		return nil
	}
	repo.s.Visited = slices.Delete(repo.s.Visited, i, i+1)

	return repo.save()
}

var persistanceRepo Repo = New("")

func GetRepo() Repo {
	return persistanceRepo
}
