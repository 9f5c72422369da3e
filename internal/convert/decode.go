package convert

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// Decode reads exactly one JSON value from r. Numbers are kept as their
// literal text so integers such as like counts are not rendered as floats.
// Input that is not valid UTF-8 is rejected.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON")
	}
	if !utf8.Valid(data) {
		return nil, errors.Mark(errors.New("error decoding JSON: input is not valid UTF-8"), ErrMalformedJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "error decoding JSON"), ErrMalformedJSON)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.Mark(errors.New("error decoding JSON: extra data after top-level value"), ErrMalformedJSON)
	}

	return v, nil
}

// IsFalsy reports whether v is an empty or zero JSON value: null, false,
// 0, "", [] or {}.
func IsFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case []map[string]any:
		return len(t) == 0
	default:
		f, ok := toFloat(v)
		return ok && f == 0
	}
}
