package configutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"repoview/internal/pkg/fs"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type mockConfigMerger struct {
	err error
}

func (m *mockConfigMerger) MergeConfig(in io.Reader) error {
	return m.err
}

type mockFlagSet struct {
	value     string
	boolValue bool
	intValue  int
	err       error
}

func (m *mockFlagSet) GetString(f string) (string, error) {
	return m.value, m.err
}

func (m *mockFlagSet) GetBool(f string) (bool, error) {
	return m.boolValue, m.err
}

func (m *mockFlagSet) GetInt(f string) (int, error) {
	return m.intValue, m.err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	err := os.WriteFile(p, []byte(content), 0o600)
	assert.NoError(t, err)

	return p
}

func withConfigDir(t *testing.T, dir string) {
	t.Helper()

	old := getConfigDir
	getConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getConfigDir = old })
}

func Test_mergeConfig(t *testing.T) {
	t.Run("returns nil when merge succeeds", func(t *testing.T) {
		err := mergeConfig(nil, &mockConfigMerger{nil})
		assert.Equal(t, nil, err)
	})

	t.Run("returns error when merge fails", func(t *testing.T) {
		vErr := errors.New("mergeFailed")
		err := mergeConfig(nil, &mockConfigMerger{vErr})
		assert.EqualError(t, err, vErr.Error())
	})
}

func Test_fileExists(t *testing.T) {
	t.Run("returns nil if file exists", func(t *testing.T) {
		err := fileExists("", fs.MockFS{Info: fs.MockFileInfo{IsDirValue: false}})
		assert.Equal(t, nil, err)
	})

	t.Run("returns error if file does not exists", func(t *testing.T) {
		vErr := errors.New("file does not exist")
		err := fileExists("", fs.MockFS{Err: vErr})
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("returns error if file is a directory", func(t *testing.T) {
		err := fileExists("", fs.MockFS{Info: fs.MockFileInfo{IsDirValue: true}})
		assert.ErrorIs(t, err, ErrConfigFileIsDir)
	})
}

func Test_loadFile(t *testing.T) {
	oldFileExists := fileExists
	defer func() { fileExists = oldFileExists }()

	t.Run("fails if file does not exist", func(t *testing.T) {
		vErr := errors.New("file err")
		fileExists = func(string, fs.Filesystem) error { return vErr }
		_, err := loadFile("", nil)
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("fails if file cannot be opened", func(t *testing.T) {
		vErr := errors.New("file err")
		fileExists = func(string, fs.Filesystem) error { return nil }
		_, err := loadFile("", fs.MockFS{Err: vErr})
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("succeeds if file exists and can be opened", func(t *testing.T) {
		fileExists = func(string, fs.Filesystem) error { return nil }
		_, err := loadFile("", fs.MockFS{})
		assert.Equal(t, nil, err)
	})
}

func Test_loadConfig(t *testing.T) {
	oldLoadFile := loadFile
	oldMergeConfig := mergeConfig
	defer func() {
		loadFile = oldLoadFile
		mergeConfig = oldMergeConfig
	}()

	t.Run("succeeds when file is loaded and merged", func(t *testing.T) {
		loadFile = func(string, fs.Filesystem) (io.Reader, error) { return nil, nil }
		mergeConfig = func(io.Reader, configMerger) error { return nil }
		err := loadConfig("", viper.New())
		assert.Equal(t, nil, err)
	})

	t.Run("fails when file cannot be loaded", func(t *testing.T) {
		vErr := errors.New("load err")
		loadFile = func(string, fs.Filesystem) (io.Reader, error) { return nil, vErr }
		err := loadConfig("", viper.New())
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("fails when file cannot be merged", func(t *testing.T) {
		vErr := errors.New("merge err")
		loadFile = func(string, fs.Filesystem) (io.Reader, error) { return nil, nil }
		mergeConfig = func(io.Reader, configMerger) error { return vErr }
		err := loadConfig("", viper.New())
		assert.EqualError(t, err, vErr.Error())
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Run("keeps the defaults when no file exists", func(t *testing.T) {
		withConfigDir(t, t.TempDir())

		v, err := DefaultConfig()

		assert.NoError(t, err)
		assert.Equal(t, "https://api.github.com", v.GetString("api.url"))
		assert.Equal(t, "30s", v.GetString("api.timeout"))
		assert.Equal(t, "info", v.GetString("log.level"))
	})

	t.Run("loads config.toml", func(t *testing.T) {
		dir := t.TempDir()
		withConfigDir(t, dir)
		writeFile(t, dir, "config.toml", "[api]\nurl = \"http://localhost:8080\"\n")

		v, err := DefaultConfig()

		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", v.GetString("api.url"))
		assert.Equal(t, "30s", v.GetString("api.timeout"))
	})

	t.Run("prefers config.yaml over config.json", func(t *testing.T) {
		dir := t.TempDir()
		withConfigDir(t, dir)
		writeFile(t, dir, "config.yaml", "default:\n  repository: facebook/react\n")
		writeFile(t, dir, "config.json", `{"default": {"repository": "golang/go"}}`)

		v, err := DefaultConfig()

		assert.NoError(t, err)
		assert.Equal(t, "facebook/react", v.GetString("default.repository"))
	})

	t.Run("fails on a broken file", func(t *testing.T) {
		dir := t.TempDir()
		withConfigDir(t, dir)
		writeFile(t, dir, "config.json", "{not json")

		_, err := DefaultConfig()

		assert.Error(t, err)
	})

	t.Run("fails without a home directory", func(t *testing.T) {
		old := getConfigDir
		getConfigDir = func() (string, error) { return "", ErrHomeDirNotFound }
		defer func() { getConfigDir = old }()

		_, err := DefaultConfig()

		assert.ErrorIs(t, err, ErrHomeDirNotFound)
	})
}

func TestLoadConfigForPath(t *testing.T) {
	t.Run("merges the local config over the global one", func(t *testing.T) {
		global := t.TempDir()
		withConfigDir(t, global)
		writeFile(t, global, "config.yaml", "api:\n  timeout: 5s\ndefault:\n  repository: golang/go\n")
		local := t.TempDir()
		writeFile(t, local, LocalConfigName, "default:\n  repository: facebook/react\n")

		v, err := LoadConfigForPath("", local)

		assert.NoError(t, err)
		assert.Equal(t, "facebook/react", v.GetString("default.repository"))
		assert.Equal(t, "5s", v.GetString("api.timeout"))
	})

	t.Run("a missing local config is not an error", func(t *testing.T) {
		withConfigDir(t, t.TempDir())

		v, err := LoadConfigForPath("", t.TempDir())

		assert.NoError(t, err)
		assert.Equal(t, "", v.GetString("default.repository"))
	})

	t.Run("loads the global config from an explicit path", func(t *testing.T) {
		dir := t.TempDir()
		p := writeFile(t, dir, "custom.yaml", "log:\n  level: debug\n")

		v, err := LoadConfigForPath(p, t.TempDir())

		assert.NoError(t, err)
		assert.Equal(t, "debug", v.GetString("log.level"))
	})

	t.Run("fails when the explicit path does not exist", func(t *testing.T) {
		_, err := LoadConfigForPath(filepath.Join(t.TempDir(), "missing.toml"), t.TempDir())

		assert.Error(t, err)
	})
}

func TestFlagDefaults(t *testing.T) {
	t.Run("string flag falls back when empty or failing", func(t *testing.T) {
		assert.Equal(t, "d", GetStringFlagOrDefault(&mockFlagSet{}, "f", "d"))
		assert.Equal(t, "d", GetStringFlagOrDefault(&mockFlagSet{value: "v", err: errors.New("x")}, "f", "d"))
		assert.Equal(t, "v", GetStringFlagOrDefault(&mockFlagSet{value: "v"}, "f", "d"))
	})

	t.Run("bool flag falls back when failing", func(t *testing.T) {
		assert.True(t, GetBoolFlagOrDefault(&mockFlagSet{err: errors.New("x")}, "f", true))
		assert.False(t, GetBoolFlagOrDefault(&mockFlagSet{}, "f", true))
	})

	t.Run("int flag falls back when zero or failing", func(t *testing.T) {
		assert.Equal(t, 1, GetIntFlagOrDefault(&mockFlagSet{}, "f", 1))
		assert.Equal(t, 1, GetIntFlagOrDefault(&mockFlagSet{intValue: 3, err: errors.New("x")}, "f", 1))
		assert.Equal(t, 3, GetIntFlagOrDefault(&mockFlagSet{intValue: 3}, "f", 1))
	})
}
