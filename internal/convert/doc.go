package convert

// Package convert flattens yt-dlp comment exports into a fixed-column CSV.
// A document is either a flat array of comment records or an array of
// videos that each carry their own "comments" array; the shape is decided
// by looking at the first element only.
