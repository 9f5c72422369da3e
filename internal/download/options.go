package download

import (
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
)

// Output filename templates, relative to the output directory
const (
	CollectionTemplate = "%(playlist_index)s-%(title)s.%(ext)s"
	SingleTemplate     = "%(title)s.%(ext)s"
)

// PostProcessorKey names a yt-dlp post-processor
type PostProcessorKey string

// Post-processors applied after a download
const (
	PostProcessorMetadata     PostProcessorKey = "FFmpegMetadata"
	PostProcessorExtractAudio PostProcessorKey = "FFmpegExtractAudio"
)

// PostProcessor is one post-processing step
type PostProcessor struct {
	Key              PostProcessorKey
	AddMetadata      bool
	PreferredCodec   string
	PreferredQuality string
}

// Auth selects where yt-dlp takes its cookies from
type Auth struct {
	Browser     string // browser whose cookie store is read, e.g. chrome
	CookiesFile string // Netscape cookies.txt
}

// IsSet reports whether any cookie source is configured
func (a Auth) IsSet() bool {
	return a.Browser != "" || a.CookiesFile != ""
}

func (a Auth) apply(cmd *ytdlp.Command) {
	if a.Browser != "" {
		cmd.CookiesFromBrowser(a.Browser)
	}
	if a.CookiesFile != "" {
		cmd.Cookies(a.CookiesFile)
	}
}

// Request is what the user asked for
type Request struct {
	Auth
	OutputDir   string
	Format      Format
	SingleVideo bool
}

// Options is the full yt-dlp configuration of a fetch
type Options struct {
	Auth
	OutputDir           string
	Collection          bool
	Format              Format
	NoPlaylist          bool
	IgnoreErrors        bool
	NoCheckCertificates bool
}

// NewOptions builds fetch options for req. collection should only be true
// when the probe found a playlist and single mode was not forced.
func NewOptions(req Request, collection bool) Options {
	return Options{
		Auth:                req.Auth,
		OutputDir:           req.OutputDir,
		Collection:          collection,
		Format:              req.Format,
		NoPlaylist:          req.SingleVideo,
		IgnoreErrors:        true,
		NoCheckCertificates: true,
	}
}

// OutputTemplate returns the output path template. Playlist entries are
// prefixed with their index.
func (o Options) OutputTemplate() string {
	if o.Collection {
		return filepath.Join(o.OutputDir, CollectionTemplate)
	}
	return filepath.Join(o.OutputDir, SingleTemplate)
}

// FormatSelector returns the yt-dlp format selector for the requested format
func (o Options) FormatSelector() string {
	return o.Format.Selector()
}

// PostProcessors returns the post-processing chain. Metadata is always
// embedded; audio formats are also transcoded.
func (o Options) PostProcessors() []PostProcessor {
	pps := []PostProcessor{{
		Key:         PostProcessorMetadata,
		AddMetadata: true,
	}}

	if o.Format.IsAudio() {
		pps = append(pps, PostProcessor{
			Key:              PostProcessorExtractAudio,
			PreferredCodec:   string(o.Format),
			PreferredQuality: AudioQuality,
		})
	}

	return pps
}

// Command applies the options to a new yt-dlp command
func (o Options) Command() *ytdlp.Command {
	cmd := ytdlp.New().
		Format(o.FormatSelector()).
		Output(o.OutputTemplate())

	if o.IgnoreErrors {
		cmd.IgnoreErrors()
	}
	if o.NoCheckCertificates {
		cmd.NoCheckCertificates()
	}
	if o.NoPlaylist {
		cmd.NoPlaylist()
	}
	o.Auth.apply(cmd)

	for _, pp := range o.PostProcessors() {
		switch pp.Key {
		case PostProcessorMetadata:
			if pp.AddMetadata {
				cmd.EmbedMetadata()
			}
		case PostProcessorExtractAudio:
			cmd.ExtractAudio().
				AudioFormat(pp.PreferredCodec).
				AudioQuality(pp.PreferredQuality)
		}
	}

	return cmd
}

// ProbeOptions configures the metadata-only inspection run before a fetch
type ProbeOptions struct {
	Auth
	NoPlaylist bool
}

// NewProbeOptions builds probe options for req
func NewProbeOptions(req Request) ProbeOptions {
	return ProbeOptions{
		Auth:       req.Auth,
		NoPlaylist: req.SingleVideo,
	}
}

// Command returns a yt-dlp command that prints the URL's metadata as one
// JSON document without resolving playlist entries.
func (o ProbeOptions) Command() *ytdlp.Command {
	cmd := ytdlp.New().
		FlatPlaylist().
		DumpSingleJSON().
		Quiet().
		NoWarnings().
		NoCheckCertificates().
		IgnoreErrors()

	if o.NoPlaylist {
		cmd.NoPlaylist()
	}
	o.Auth.apply(cmd)

	return cmd
}

// CommentsOptions configures a comments export
type CommentsOptions struct {
	Auth
	NoPlaylist bool
}

// NewCommentsOptions builds comments export options for req
func NewCommentsOptions(req Request) CommentsOptions {
	return CommentsOptions{
		Auth:       req.Auth,
		NoPlaylist: req.SingleVideo,
	}
}

// Command returns a yt-dlp command printing one JSON line, comments
// included, per video without downloading media.
func (o CommentsOptions) Command() *ytdlp.Command {
	cmd := ytdlp.New().
		WriteComments().
		DumpJSON().
		SkipDownload().
		Quiet().
		NoWarnings().
		NoCheckCertificates().
		IgnoreErrors()

	if o.NoPlaylist {
		cmd.NoPlaylist()
	}
	o.Auth.apply(cmd)

	return cmd
}
