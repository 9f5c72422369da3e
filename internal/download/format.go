package download

import (
	"fmt"
	"strings"
)

// Format is the requested output format
type Format string

// Supported formats
const (
	FormatMP4 Format = "mp4"
	FormatMP3 Format = "mp3"
	FormatM4A Format = "m4a"
	FormatWAV Format = "wav"
)

// DefaultFormat is used when no format is requested
const DefaultFormat = FormatMP4

// AudioQuality is the bitrate handed to the audio extractor, in kbit/s
const AudioQuality = "192"

// formatSelectors maps each format to its yt-dlp format selector
var formatSelectors = map[Format]string{
	FormatMP4: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
	FormatMP3: "bestaudio/best",
	FormatM4A: "bestaudio[ext=m4a]/best",
	FormatWAV: "bestaudio/best",
}

// Formats returns the supported formats in display order
func Formats() []Format {
	return []Format{FormatMP4, FormatMP3, FormatM4A, FormatWAV}
}

// FormatNames returns the supported format names, for flag help
func FormatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat validates name case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := formatSelectors[f]; !ok {
		return "", fmt.Errorf("unsupported format %q (choose from %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// IsAudio reports whether the format is audio only
func (f Format) IsAudio() bool {
	switch f {
	case FormatMP3, FormatM4A, FormatWAV:
		return true
	default:
		return false
	}
}

// Selector returns the yt-dlp format selector. Unknown formats fall back to
// the mp4 selector.
func (f Format) Selector() string {
	if s, ok := formatSelectors[f]; ok {
		return s
	}
	return formatSelectors[DefaultFormat]
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}
