package download

import (
	"context"
	"io"

	"github.com/alessio/shellescape"
	"github.com/cockroachdb/errors"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytkit/internal/platform"
)

// Executable is the name of the yt-dlp binary
const Executable = "yt-dlp"

// YTDLP is the Extractor backed by the yt-dlp executable
type YTDLP struct {
	progressOut io.Writer
}

// NewYTDLP creates an extractor. Progress bars are drawn to progressOut
// unless it is nil.
func NewYTDLP(progressOut io.Writer) *YTDLP {
	return &YTDLP{progressOut: progressOut}
}

// Probe runs the metadata-only inspection
func (y *YTDLP) Probe(ctx context.Context, url string, opts ProbeOptions) (*ProbeInfo, error) {
	result, err := opts.Command().Run(ctx, url)
	var stdout string
	if result != nil {
		stdout = result.Stdout
	}
	return probeInfoFromRun(ctx, stdout, err)
}

// probeInfoFromRun interprets the output of a probe run. A run that failed
// without printing anything yields an empty ProbeInfo so the fetch still
// goes ahead as a single video.
func probeInfoFromRun(ctx context.Context, stdout string, runErr error) (*ProbeInfo, error) {
	if runErr != nil {
		if ctx.Err() != nil {
			return nil, runErr
		}
		if stdout == "" {
			platform.LogWarn("Could not analyze URL, downloading as a single video: %v", runErr)
			return &ProbeInfo{}, nil
		}
		// ignored errors still exit non-zero; keep whatever was printed
		platform.LogDebug("probe exited with %v, using partial output", runErr)
	}
	return ParseProbeInfo([]byte(stdout))
}

// Fetch downloads url with opts
func (y *YTDLP) Fetch(ctx context.Context, url string, opts Options, onProgress ProgressFunc) error {
	cmd := opts.Command()

	var bars *progressBars
	if y.progressOut != nil {
		bars = newProgressBars(y.progressOut)
	}

	if bars != nil || onProgress != nil {
		cmd.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			p := progressFromUpdate(&update)
			if bars != nil {
				bars.Update(p)
			}
			if onProgress != nil {
				onProgress(p)
			}
		})
	}

	_, err := cmd.Run(ctx, url)
	if bars != nil {
		bars.Wait()
	}
	return err
}

// Comments dumps every video of url as a JSON line, comments included
func (y *YTDLP) Comments(ctx context.Context, url string, opts CommentsOptions) ([]byte, error) {
	result, err := opts.Command().Run(ctx, url)
	if err != nil {
		if result == nil || result.Stdout == "" {
			return nil, err
		}
		platform.LogDebug("comments export exited with %v, using partial output", err)
	}
	return []byte(result.Stdout), nil
}

// CommandLine renders the fetch command as a shell-safe string
func (y *YTDLP) CommandLine(_ context.Context, url string, opts Options) string {
	args := append([]string{Executable}, commandArgs(opts.Command())...)
	args = append(args, url)
	return shellescape.QuoteCommand(args)
}

// commandArgs returns the flags cmd passes to yt-dlp, values included
func commandArgs(cmd *ytdlp.Command) []string {
	var args []string
	for _, f := range cmd.GetFlagConfig().ToFlags() {
		args = append(args, f.Raw()...)
	}
	return args
}

// Install downloads yt-dlp, ffmpeg and ffprobe into the go-ytdlp cache
// when they are not already available.
func Install(ctx context.Context) error {
	platform.LogInfo("Installing yt-dlp and ffmpeg...")
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to install yt-dlp")
	}
	if _, err := ytdlp.InstallFFmpeg(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to install ffmpeg")
	}
	if _, err := ytdlp.InstallFFprobe(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to install ffprobe")
	}
	platform.LogInfo("Tools installed successfully")
	return nil
}

func progressFromUpdate(update *ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Filename:        update.Filename,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}
	return p
}
