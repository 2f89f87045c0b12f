package errcodes

import "github.com/pkg/errors"

var (
	ErrMissingRepository               = errors.New("repository is missing")
	ErrRepositoryMustBeInFormOwnerRepo = errors.New("repository must be in the form of 'owner/repo'")
	ErrMalformedIdentifier             = errors.New("repository identifier cannot be decoded")
	ErrUnknownIssueState               = errors.New("issue state is unknown, expected (open, closed, all)")
	ErrInvalidPage                     = errors.New("page must be 1 or greater")
	ErrViewNotReady                    = errors.New("repository view is not loaded yet")
)
