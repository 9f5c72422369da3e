package download

import (
	"github.com/cockroachdb/errors"
)

// ErrRetrieval marks failures raised by yt-dlp while probing or fetching.
// Callers log these and carry on.
var ErrRetrieval = errors.New("retrieval failed")

// IsRetrieval reports whether err came from the retrieval layer
func IsRetrieval(err error) bool {
	return errors.Is(err, ErrRetrieval)
}

func retrievalError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrRetrieval)
}
