package sources

import (
	"errors"
	"fmt"

	"log-stats/internal/shared/svcerrors"
)

const (
	codeInternalSourcePollFailed  = "SRC_9000"
	codeInternalSourceCloseFailed = "SRC_9001"
)

// ErrSourceClosed is returned by Poll once the source has been closed.
var ErrSourceClosed = errors.New("record source closed")

// errInternalSourcePollFailed returns an error when the upstream stream cannot be read.
func errInternalSourcePollFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourcePollFailed, fmt.Errorf("sourcePollFailed: %w", cause))
}

// errInternalSourceCloseFailed returns an error when the upstream connection cannot be released.
func errInternalSourceCloseFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourceCloseFailed, fmt.Errorf("sourceCloseFailed: %w", cause))
}
