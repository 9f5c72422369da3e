package download

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"github.com/ytget/ytkit/internal/model"
)

// videoComments is the part of a yt-dlp info line the export keeps
type videoComments struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Comments []model.Comment `json:"comments"`
}

// ParseCommentGroups reads the JSON lines printed by a comments export, one
// video per line. Numbers keep their literal text.
func ParseCommentGroups(r io.Reader) ([]*model.Group, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var groups []*model.Group
	for line := 1; ; line++ {
		var v videoComments
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse video %d", line)
		}
		if v.ID == "" && len(v.Comments) == 0 {
			continue
		}

		group := model.NewGroup(v.ID, v.Title)
		group.AddComments(v.Comments...)
		groups = append(groups, group)
	}

	return groups, nil
}

// WriteComments writes groups as an indented JSON document. With flat set
// and exactly one group, only that group's comments are written.
func WriteComments(w io.Writer, groups []*model.Group, flat bool) error {
	var doc any = groups
	if groups == nil {
		doc = []*model.Group{}
	}
	if flat && len(groups) == 1 {
		doc = groups[0].Comments
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode comments")
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write comments")
	}
	return nil
}

// SaveComments creates or truncates path and writes groups into it
func SaveComments(path string, groups []*model.Group, flat bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	return WriteComments(f, groups, flat)
}

// CountComments returns the number of comments across groups
func CountComments(groups []*model.Group) int {
	total := 0
	for _, g := range groups {
		total += g.Len()
	}
	return total
}
