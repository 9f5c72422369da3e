package model

// Comment is a single comment record as exported by yt-dlp. Keys are not
// guaranteed; consumers must tolerate any of them being absent.
type Comment = map[string]any

// Document is the decoded top-level array of a comments JSON file
type Document = []any

// Shape classifies a comments document
type Shape string

const (
	// ShapeUnknown is used before a document was inspected
	ShapeUnknown Shape = ""

	// ShapeFlat means top-level entries are comment records
	ShapeFlat Shape = "flat"

	// ShapeGrouped means top-level entries are videos holding their own comments
	ShapeGrouped Shape = "grouped"
)

// String returns the string representation of Shape
func (s Shape) String() string {
	if s == ShapeUnknown {
		return "unknown"
	}
	return string(s)
}

// Comment and group field names
const (
	KeyID         = "id"
	KeyComments   = "comments"
	KeyTitle      = "title"
	KeyVideoID    = "video_id"
	KeyVideoTitle = "video_title"
	KeyTimestamp  = "timestamp"
	KeyDate       = "date"
)

// Group is one video of a grouped comments document
type Group struct {
	Title    string    `json:"title"`
	VideoID  string    `json:"video_id"`
	Comments []Comment `json:"comments"`
}

// NewGroup creates a group with an empty, non-nil comment list
func NewGroup(videoID, title string) *Group {
	return &Group{
		Title:    title,
		VideoID:  videoID,
		Comments: make([]Comment, 0),
	}
}

// AddComments appends comments to the group
func (g *Group) AddComments(comments ...Comment) {
	g.Comments = append(g.Comments, comments...)
}

// Len returns the number of comments in the group
func (g *Group) Len() int {
	return len(g.Comments)
}
