package download

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ytget/ytkit/internal/model"
)

const commentLines = `{"id": "v1", "title": "First", "duration": 30, "comments": [{"id": "c1", "text": "hi", "like_count": 3}, {"id": "c2", "parent": "c1", "text": "yo"}]}
{"id": "v2", "title": "Second", "comments": null}
`

func TestParseCommentGroups(t *testing.T) {
	groups, err := ParseCommentGroups(strings.NewReader(commentLines))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].VideoID != "v1" || groups[0].Title != "First" || groups[0].Len() != 2 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if n, ok := groups[0].Comments[0]["like_count"].(json.Number); !ok || n.String() != "3" {
		t.Errorf("expected like_count to stay a number literal, got %#v", groups[0].Comments[0]["like_count"])
	}

	if groups[1].Comments == nil || groups[1].Len() != 0 {
		t.Errorf("expected empty non-nil comments for second group, got %#v", groups[1].Comments)
	}

	if CountComments(groups) != 2 {
		t.Errorf("expected 2 comments in total, got %d", CountComments(groups))
	}
}

func TestParseCommentGroups_Invalid(t *testing.T) {
	_, err := ParseCommentGroups(strings.NewReader(`{"id": "v1", "comments": [`))
	if err == nil {
		t.Error("expected error for truncated output")
	}
}

func TestParseCommentGroups_Empty(t *testing.T) {
	groups, err := ParseCommentGroups(strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestWriteComments(t *testing.T) {
	group := model.NewGroup("v1", "First")
	group.AddComments(model.Comment{"id": "c1"}, model.Comment{"id": "c2"})

	tests := []struct {
		name    string
		groups  []*model.Group
		flat    bool
		grouped bool
		count   int
	}{
		{"grouped", []*model.Group{group}, false, true, 1},
		{"flat single video", []*model.Group{group}, true, false, 2},
		{"flat ignored for several videos", []*model.Group{group, model.NewGroup("v2", "Second")}, true, true, 2},
		{"nothing", nil, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteComments(&buf, tt.groups, tt.flat); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var doc []map[string]any
			if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatalf("expected a JSON array, got %q: %v", buf.String(), err)
			}
			if len(doc) != tt.count {
				t.Fatalf("expected %d elements, got %d", tt.count, len(doc))
			}
			if tt.count == 0 {
				return
			}
			_, hasComments := doc[0][model.KeyComments]
			if hasComments != tt.grouped {
				t.Errorf("expected grouped=%v, got element %v", tt.grouped, doc[0])
			}
		})
	}
}
