package convert

import (
	"github.com/cockroachdb/errors"

	"github.com/ytget/ytkit/internal/model"
)

// FlattenOptions tunes Flatten
type FlattenOptions struct {
	// Strict rejects documents whose elements do not all share the shape of
	// the first one. Off by default: later elements silently follow the
	// first element's shape.
	Strict bool
}

// DetectShape classifies doc by its first element only: grouped when it is an
// object whose "comments" value is an array, flat otherwise.
func DetectShape(doc model.Document) model.Shape {
	if len(doc) > 0 && isGroup(doc[0]) {
		return model.ShapeGrouped
	}
	return model.ShapeFlat
}

// Flatten turns doc into one record per comment. Grouped documents get the
// group's title and video_id injected into every nested record; flat
// documents return their own records. Records are the document's maps, not
// copies, and injection mutates them.
func Flatten(doc model.Document, opts FlattenOptions) ([]model.Comment, model.Shape, error) {
	if len(doc) == 0 {
		return nil, model.ShapeUnknown, ErrEmptyInput
	}

	shape := DetectShape(doc)
	if opts.Strict {
		if err := validateUniform(doc, shape); err != nil {
			return nil, shape, err
		}
	}

	var (
		records []model.Comment
		err     error
	)
	if shape == model.ShapeGrouped {
		records, err = flattenGroups(doc)
	} else {
		records, err = flatRecords(doc)
	}
	if err != nil {
		return nil, shape, err
	}

	if len(records) == 0 {
		return nil, shape, ErrNoComments
	}
	return records, shape, nil
}

// flattenGroups injects group identity into nested records
func flattenGroups(doc model.Document) ([]model.Comment, error) {
	var records []model.Comment
	for i, el := range doc {
		group, ok := el.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRecord, "group %d", i)
		}

		title := valueOr(group, model.KeyTitle, "")
		videoID := valueOr(group, model.KeyVideoID, "")

		raw, present := group[model.KeyComments]
		if !present {
			continue
		}
		comments, ok := asArray(raw)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRecord, "group %d: comments is not an array", i)
		}

		for j, c := range comments {
			rec, ok := c.(map[string]any)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidRecord, "group %d comment %d", i, j)
			}
			rec[model.KeyVideoTitle] = title
			rec[model.KeyVideoID] = videoID
			records = append(records, rec)
		}
	}
	return records, nil
}

// flatRecords views every element as a comment record
func flatRecords(doc model.Document) ([]model.Comment, error) {
	records := make([]model.Comment, 0, len(doc))
	for i, el := range doc {
		rec, ok := el.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRecord, "element %d", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// validateUniform checks every element against the sampled shape
func validateUniform(doc model.Document, shape model.Shape) error {
	want := shape == model.ShapeGrouped
	for i := 1; i < len(doc); i++ {
		if isGroup(doc[i]) != want {
			return errors.Wrapf(ErrMixedShape, "element %d does not match %s shape of element 0", i, shape)
		}
	}
	return nil
}

func isGroup(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = asArray(m[model.KeyComments])
	return ok
}

// asArray accepts decoded JSON arrays as well as record slices built in Go
func asArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func valueOr(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
