package convert

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ytget/ytkit/internal/model"
)

// GroupSummary counts the comments of one video
type GroupSummary struct {
	VideoID  string
	Title    string
	Comments int
}

// Summarize counts comments per video. Flat documents yield a single
// anonymous entry.
func Summarize(doc model.Document, shape model.Shape) []GroupSummary {
	if shape != model.ShapeGrouped {
		return []GroupSummary{{Comments: len(doc)}}
	}

	summaries := make([]GroupSummary, 0, len(doc))
	for _, el := range doc {
		group, ok := el.(map[string]any)
		if !ok {
			continue
		}
		comments, _ := asArray(group[model.KeyComments])
		summaries = append(summaries, GroupSummary{
			VideoID:  formatCell(group[model.KeyVideoID]),
			Title:    formatCell(group[model.KeyTitle]),
			Comments: len(comments),
		})
	}
	return summaries
}

// RenderSummary prints summaries as a table with a total footer
func RenderSummary(w io.Writer, summaries []GroupSummary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"video_id", "video_title", "comments"})

	total := 0
	for _, s := range summaries {
		total += s.Comments
		table.Append([]string{s.VideoID, s.Title, strconv.Itoa(s.Comments)})
	}

	table.SetFooter([]string{"", "total", strconv.Itoa(total)})
	table.Render()
}
