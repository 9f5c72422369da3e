package download

import (
	"context"

	"github.com/ytget/ytkit/internal/model"
)

// Extractor runs yt-dlp. YTDLP is the real implementation; tests use fakes.
type Extractor interface {
	// Probe inspects url without downloading anything
	Probe(ctx context.Context, url string, opts ProbeOptions) (*ProbeInfo, error)

	// Fetch downloads url, reporting progress to onProgress when it is not nil
	Fetch(ctx context.Context, url string, opts Options, onProgress ProgressFunc) error

	// Comments returns the JSON lines printed for every video of url
	Comments(ctx context.Context, url string, opts CommentsOptions) ([]byte, error)

	// CommandLine renders the fetch command for url without running it
	CommandLine(ctx context.Context, url string, opts Options) string
}

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	SetProgressCallback(ProgressFunc)
	Plan(ctx context.Context, url string, req Request) (*model.DownloadTask, Options, error)
	Download(ctx context.Context, url string, req Request) (*model.DownloadTask, error)
	DryRun(ctx context.Context, url string, req Request) (string, error)
	ExportComments(ctx context.Context, url, path string, req Request) ([]*model.Group, error)
}

var (
	_ Extractor  = (*YTDLP)(nil)
	_ Downloader = (*Service)(nil)
)
