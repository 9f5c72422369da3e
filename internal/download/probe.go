package download

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// UnknownTitle is shown when the probe reported no title
const UnknownTitle = "Unknown"

// ProbeInfo is what the metadata-only inspection learned about a URL
type ProbeInfo struct {
	ID         string
	Type       string // yt-dlp "_type", e.g. playlist
	Title      string
	HasEntries bool // an "entries" key was present
	EntryCount int
}

// IsCollection reports whether the URL should be fetched as a playlist
func (p *ProbeInfo) IsCollection(single bool) bool {
	return p != nil && p.HasEntries && !single
}

// DisplayTitle returns the title or a placeholder
func (p *ProbeInfo) DisplayTitle() string {
	if p == nil || p.Title == "" {
		return UnknownTitle
	}
	return p.Title
}

// ParseProbeInfo reads the single JSON document printed by a probe. Empty
// output, which yt-dlp produces for ignored errors, yields an empty info.
func ParseProbeInfo(data []byte) (*ProbeInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &ProbeInfo{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse probe output")
	}

	info := &ProbeInfo{
		ID:    rawString(raw["id"]),
		Type:  rawString(raw["_type"]),
		Title: rawString(raw["title"]),
	}

	if entries, ok := raw["entries"]; ok {
		info.HasEntries = true
		var list []json.RawMessage
		if err := json.Unmarshal(entries, &list); err == nil {
			info.EntryCount = len(list)
		}
	}

	return info, nil
}

// rawString decodes a JSON string, returning "" for anything else
func rawString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}
