package logutils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel falls back to info for unknown or empty levels.
func ParseLevel(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return l
}

var openLogFile = func(path string) (io.WriteCloser, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(p), 0o750)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create log directory")
	}

	return os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
}

// Setup points the global logger at the file at path. The terminal belongs
// to the UI, so nothing is logged to stderr. The returned closer releases
// the file.
func Setup(path, level string) (io.Closer, error) {
	f, err := openLogFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open log file %s", path)
	}

	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	return f, nil
}
