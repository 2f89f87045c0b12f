package browser

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

var goos = runtime.GOOS

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open shows url in the default browser of the platform without waiting
// for it to exit.
func Open(url string) error {
	var err error

	switch goos {
	case "linux", "freebsd", "openbsd":
		err = startCommand("xdg-open", url)
	case "windows":
		err = startCommand("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		err = startCommand("open", url)
	default:
		err = ErrUnsupportedPlatform
	}

	return errors.Wrapf(err, "cannot open %s", url)
}
