package configutils

import (
	"fmt"
	"io"
	"path/filepath"

	"repoview/internal/pkg/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDir       = "~/.config/repoview"
	LocalConfigName = ".repoviewcfg"
)

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
	GetInt(string) (int, error)
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

var supportedFiletypes = []string{"yaml", "json", "toml"}

var filesystem fs.Filesystem = fs.OS{}

var mergeConfig = func(in io.Reader, cm configMerger) error {
	return cm.MergeConfig(in)
}

var fileExists = func(filename string, fs fs.Filesystem) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fs fs.Filesystem) (io.Reader, error) {
	err := fileExists(filename, fs)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}

	return f, nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, filesystem)
	if err != nil {
		return err
	}
	if c, ok := f.(io.Closer); ok {
		defer c.Close()
	}

	return mergeConfig(f, v)
}

var getConfigDir = func() (string, error) {
	d, err := homedir.Expand(ConfigDir)
	if err != nil {
		return "", ErrHomeDirNotFound
	}

	return d, nil
}

// SetDefaults registers the values used when no configuration file sets them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "https://api.github.com")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(ConfigDir, "repoview.log"))
	v.SetDefault("general.useNerdFontIcons", false)
}

// loadAnyType tries every supported file type on filename and keeps the
// first one that parses.
func loadAnyType(filename string, v *viper.Viper) error {
	var err error
	for _, ft := range supportedFiletypes {
		v.SetConfigType(ft)
		err = loadConfig(filename, v)
		if err == nil {
			return nil
		}
		log.Debug().
			Str("file", filename).
			Msgf("config loading failed for type %s, skipping to next filetype", ft)
	}

	return err
}

// MergeLocalConfig merges the .repoviewcfg file of path over v when it exists.
func MergeLocalConfig(v *viper.Viper, path string) error {
	f := filepath.Join(path, LocalConfigName)
	if _, err := filesystem.Stat(f); err != nil {
		return nil
	}

	return errors.Wrapf(loadAnyType(f, v), "could not load %s", f)
}

// DefaultConfig loads the first of config.yaml, config.json and config.toml
// found in the configuration directory. A missing file leaves the defaults.
func DefaultConfig() (*viper.Viper, error) {
	cfgDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	SetDefaults(v)
	for _, ft := range supportedFiletypes {
		f := filepath.Join(cfgDir, fmt.Sprintf("config.%s", ft))
		if fileExists(f, filesystem) != nil {
			continue
		}
		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load config %s", f)
		}

		return v, nil
	}

	return v, nil
}

// LoadGlobal loads the configuration file at path instead of the default
// location.
func LoadGlobal(path string) (*viper.Viper, error) {
	if path == "" {
		return DefaultConfig()
	}

	p, err := homedir.Expand(path)
	if err != nil {
		return nil, ErrHomeDirNotFound
	}

	v := viper.New()
	SetDefaults(v)
	if err := loadAnyType(p, v); err != nil {
		return nil, errors.Wrapf(err, "could not load config %s", p)
	}

	return v, nil
}

// LoadConfigForPath loads the global configuration (or the one at
// configPath) and merges the local configuration of dir over it.
func LoadConfigForPath(configPath, dir string) (*viper.Viper, error) {
	v, err := LoadGlobal(configPath)
	if err != nil {
		return nil, err
	}

	err = MergeLocalConfig(v, dir)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func GetBoolFlagOrDefault(fs FlagSet, flag string, d bool) bool {
	v, err := fs.GetBool(flag)
	if err != nil {
		return d
	}

	return v
}

func GetStringFlagOrDefault(fs FlagSet, flag, d string) string {
	s, err := fs.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func GetIntFlagOrDefault(fs FlagSet, flag string, d int) int {
	i, err := fs.GetInt(flag)
	if err != nil || i == 0 {
		return d
	}

	return i
}
