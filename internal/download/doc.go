// Package download implements the retrieval pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It probes a URL to tell a playlist from
// a single video, assembles the yt-dlp options for the requested format,
// fetches the media and exports comments for the converter.
package download
