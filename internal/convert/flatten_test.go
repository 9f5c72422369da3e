package convert

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/ytget/ytkit/internal/model"
)

func mustDecodeDocument(t *testing.T, input string) model.Document {
	t.Helper()
	v, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to decode test document: %v", err)
	}
	doc, ok := v.([]any)
	if !ok {
		t.Fatalf("test document is not an array: %T", v)
	}
	return doc
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.Shape
	}{
		{
			name:     "flat comments",
			input:    `[{"id": "c1", "text": "hi"}, {"id": "c2", "text": "yo"}]`,
			expected: model.ShapeFlat,
		},
		{
			name:     "grouped comments",
			input:    `[{"title": "Video", "video_id": "v1", "comments": [{"id": "c1"}]}]`,
			expected: model.ShapeGrouped,
		},
		{
			name:     "grouped with empty nested list",
			input:    `[{"title": "Video", "comments": []}]`,
			expected: model.ShapeGrouped,
		},
		{
			name:     "comments key that is not an array",
			input:    `[{"id": "c1", "comments": "disabled"}]`,
			expected: model.ShapeFlat,
		},
		{
			name:     "first element decides even if later ones are grouped",
			input:    `[{"id": "c1"}, {"title": "Video", "comments": [{"id": "c2"}]}]`,
			expected: model.ShapeFlat,
		},
		{
			name:     "first element is not an object",
			input:    `["text", {"comments": []}]`,
			expected: model.ShapeFlat,
		},
		{
			name:     "empty document",
			input:    `[]`,
			expected: model.ShapeFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecodeDocument(t, tt.input)
			if shape := DetectShape(doc); shape != tt.expected {
				t.Errorf("expected shape %s, got %s", tt.expected, shape)
			}
		})
	}
}

func TestFlatten_Flat(t *testing.T) {
	doc := mustDecodeDocument(t, `[{"id": "c1"}, {"id": "c2"}, {"id": "c3", "parent": "c1"}]`)

	records, shape, err := Flatten(doc, FlattenOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if shape != model.ShapeFlat {
		t.Errorf("expected flat shape, got %s", shape)
	}

	if len(records) != len(doc) {
		t.Fatalf("expected %d records, got %d", len(doc), len(records))
	}

	// records are the document's own maps
	records[0]["marker"] = true
	if doc[0].(map[string]any)["marker"] != true {
		t.Error("expected flat records to alias the input maps")
	}

	if _, ok := records[1][model.KeyVideoID]; ok {
		t.Error("flat records must not get a video_id injected")
	}
}

func TestFlatten_Grouped(t *testing.T) {
	doc := mustDecodeDocument(t, `[
		{"title": "First", "video_id": "v1", "comments": [{"id": "a"}, {"id": "b"}]},
		{"title": "Second", "video_id": "v2", "comments": [{"id": "c"}]},
		{"video_id": "v3", "comments": [{"id": "d"}, {"id": "e"}, {"id": "f"}]},
		{"title": "No comments key", "video_id": "v4"}
	]`)

	records, shape, err := Flatten(doc, FlattenOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if shape != model.ShapeGrouped {
		t.Errorf("expected grouped shape, got %s", shape)
	}

	if len(records) != 6 {
		t.Fatalf("expected 6 records (sum of nested counts), got %d", len(records))
	}

	expected := []struct {
		id, videoID, title string
	}{
		{"a", "v1", "First"},
		{"b", "v1", "First"},
		{"c", "v2", "Second"},
		{"d", "v3", ""},
		{"e", "v3", ""},
		{"f", "v3", ""},
	}
	for i, want := range expected {
		rec := records[i]
		if rec["id"] != want.id {
			t.Errorf("record %d: expected id %s, got %v", i, want.id, rec["id"])
		}
		if rec[model.KeyVideoID] != want.videoID {
			t.Errorf("record %d: expected video_id %s, got %v", i, want.videoID, rec[model.KeyVideoID])
		}
		if rec[model.KeyVideoTitle] != want.title {
			t.Errorf("record %d: expected video_title %q, got %v", i, want.title, rec[model.KeyVideoTitle])
		}
	}
}

func TestFlatten_GroupedFromGoValues(t *testing.T) {
	doc := model.Document{
		map[string]any{
			model.KeyTitle:    "Built in Go",
			model.KeyVideoID:  "go1",
			model.KeyComments: []model.Comment{{"id": "x"}, {"id": "y"}},
		},
	}

	records, shape, err := Flatten(doc, FlattenOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shape != model.ShapeGrouped {
		t.Errorf("expected grouped shape, got %s", shape)
	}
	if len(records) != 2 || records[1][model.KeyVideoID] != "go1" {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestFlatten_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     FlattenOptions
		expected error
	}{
		{
			name:     "empty document",
			input:    `[]`,
			expected: ErrEmptyInput,
		},
		{
			name:     "groups without comments",
			input:    `[{"title": "A", "comments": []}, {"title": "B", "comments": []}]`,
			expected: ErrNoComments,
		},
		{
			name:     "flat element that is not an object",
			input:    `[{"id": "c1"}, 42]`,
			expected: ErrInvalidRecord,
		},
		{
			name:     "group element that is not an object",
			input:    `[{"comments": [{"id": "c1"}]}, "oops"]`,
			expected: ErrInvalidRecord,
		},
		{
			name:     "nested comment that is not an object",
			input:    `[{"comments": [{"id": "c1"}, null]}]`,
			expected: ErrInvalidRecord,
		},
		{
			name:     "later group with null comments",
			input:    `[{"comments": [{"id": "c1"}]}, {"comments": null}]`,
			expected: ErrInvalidRecord,
		},
		{
			name:     "strict mode rejects mixed shapes",
			input:    `[{"id": "c1"}, {"title": "Video", "comments": [{"id": "c2"}]}]`,
			opts:     FlattenOptions{Strict: true},
			expected: ErrMixedShape,
		},
		{
			name:     "strict mode rejects flat element in grouped document",
			input:    `[{"title": "Video", "comments": [{"id": "c2"}]}, {"id": "c1"}]`,
			opts:     FlattenOptions{Strict: true},
			expected: ErrMixedShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecodeDocument(t, tt.input)
			_, _, err := Flatten(doc, tt.opts)
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.expected)
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected error %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestFlatten_NonStrictKeepsFirstElementShape(t *testing.T) {
	doc := mustDecodeDocument(t, `[{"id": "c1"}, {"title": "Video", "video_id": "v1", "comments": [{"id": "c2"}]}]`)

	records, shape, err := Flatten(doc, FlattenOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shape != model.ShapeFlat {
		t.Errorf("expected flat shape, got %s", shape)
	}
	// the group object is emitted as if it were a comment; its nested comment is lost
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1][model.KeyVideoID] != "v1" {
		t.Errorf("expected group element passed through unchanged, got %v", records[1])
	}
}

func TestFlatten_StrictAcceptsUniformDocuments(t *testing.T) {
	inputs := []string{
		`[{"id": "c1"}, {"id": "c2"}]`,
		`[{"title": "A", "comments": [{"id": "c1"}]}, {"title": "B", "comments": [{"id": "c2"}]}]`,
	}

	for _, input := range inputs {
		doc := mustDecodeDocument(t, input)
		records, _, err := Flatten(doc, FlattenOptions{Strict: true})
		if err != nil {
			t.Errorf("expected no error for %s, got %v", input, err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records for %s, got %d", input, len(records))
		}
	}
}
