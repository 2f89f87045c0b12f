package issueview

import (
	"repoview/internal/errcodes"
	"repoview/internal/pkg/client"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindNotFound
	KindMalformedIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network failure"
	case KindNotFound:
		return "not found"
	case KindMalformedIdentifier:
		return "malformed identifier"
	}

	return "unknown"
}

// Classify maps an error returned by the view onto the failure taxonomy.
// Anything that is neither an identifier problem nor an error status is
// treated as a network failure.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, errcodes.ErrMalformedIdentifier) ||
		errors.Is(err, errcodes.ErrRepositoryMustBeInFormOwnerRepo) ||
		errors.Is(err, errcodes.ErrMissingRepository) {
		return KindMalformedIdentifier
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return KindNotFound
	}

	return KindNetwork
}
