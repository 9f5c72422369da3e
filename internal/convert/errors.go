package convert

import (
	"github.com/cockroachdb/errors"
)

// Input errors; the CLI exits non-zero for these
var (
	ErrInputNotFound       = errors.New("file not found")
	ErrMalformedJSON       = errors.New("malformed JSON")
	ErrUnsupportedDocument = errors.New("top-level JSON value is not an array")
	ErrInvalidRecord       = errors.New("record is not a JSON object")
	ErrMixedShape          = errors.New("document mixes grouped and flat elements")
	ErrWriteCSV            = errors.New("error writing CSV")
)

// Informational outcomes; nothing is written and the CLI exits zero
var (
	ErrEmptyInput = errors.New("JSON file is empty")
	ErrNoComments = errors.New("no comments found to convert")
)

// IsInformational reports whether err only means there was nothing to convert
func IsInformational(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrNoComments)
}
