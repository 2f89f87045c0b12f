package issueview

import (
	"net/url"
	"strings"

	"repoview/internal/errcodes"

	"github.com/pkg/errors"
)

// DecodeRouteParam turns a percent-encoded route parameter into an
// owner/name repository identifier.
func DecodeRouteParam(param string) (string, error) {
	if strings.TrimSpace(param) == "" {
		return "", errcodes.ErrMissingRepository
	}

	name, err := url.PathUnescape(param)
	if err != nil {
		return "", errors.Wrapf(errcodes.ErrMalformedIdentifier, "%q: %v", param, err)
	}

	err = ValidateRepositoryName(name)
	if err != nil {
		return "", err
	}

	return name, nil
}

func ValidateRepositoryName(name string) error {
	v := strings.Split(name, "/")
	if len(v) != 2 || v[0] == "" || v[1] == "" {
		return errors.Wrapf(errcodes.ErrRepositoryMustBeInFormOwnerRepo, "got %q", name)
	}

	return nil
}

// EncodeRouteParam is the inverse of DecodeRouteParam.
func EncodeRouteParam(name string) string {
	return url.PathEscape(name)
}
