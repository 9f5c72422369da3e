package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ytget/ytkit/internal/config"
	"github.com/ytget/ytkit/internal/download"
	"github.com/ytget/ytkit/internal/platform"
)

// Flag names shared by every command
const (
	flagConfig      = "config"
	flagOutputDir   = "output-dir"
	flagBrowser     = "browser"
	flagCookiesFile = "cookies-file"
	flagSingleVideo = "single-video"
	flagFormat      = "format"
	flagVerbose     = "verbose"
	flagQuiet       = "quiet"
)

// commonOptions holds the flags shared by the root and comments commands
type commonOptions struct {
	configPath  string
	outputDir   string
	browser     string
	cookiesFile string
	format      string
	singleVideo bool
	verbose     bool
	quiet       bool
}

func (o *commonOptions) addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, flagConfig, "", "YAML settings file (default $"+config.EnvConfigPath+" or the user config directory)")
	flags.StringVarP(&o.outputDir, flagOutputDir, "o", config.DefaultOutputDir, "Directory to save the downloaded videos")
	flags.StringVarP(&o.browser, flagBrowser, "b", "", "Browser to load cookies from (e.g. chrome, firefox, safari). Helps avoid 403 errors.")
	flags.StringVarP(&o.cookiesFile, flagCookiesFile, "c", "", "Path to a Netscape formatted cookies.txt file (reliable fallback if browser extraction fails)")
	flags.BoolVarP(&o.singleVideo, flagSingleVideo, "s", false, "Force download as a single video, even if the URL is a playlist")
	flags.StringVarP(&o.format, flagFormat, "f", config.DefaultFormat, "Download format: "+strings.Join(download.FormatNames(), ", "))
	flags.BoolVarP(&o.verbose, flagVerbose, "v", false, "Print debug output")
	flags.BoolVarP(&o.quiet, flagQuiet, "q", false, "Only print errors")
}

func (o *commonOptions) initLogging() {
	platform.InitLogging(platform.LevelFromFlags(o.quiet, o.verbose))
}

// request merges the settings file with the flags the user set explicitly
func (o *commonOptions) request(cmd *cobra.Command) (download.Request, error) {
	settings, err := config.Load(config.ResolvePath(o.configPath))
	if err != nil {
		return download.Request{}, err
	}
	if settings.Path() != "" {
		platform.LogDebug("settings file: %s", settings.Path())
	}

	flags := cmd.Flags()
	if flags.Changed(flagOutputDir) {
		settings.SetOutputDirectory(o.outputDir)
	}
	if flags.Changed(flagFormat) {
		settings.SetFormat(o.format)
	}
	if flags.Changed(flagBrowser) {
		settings.SetBrowser(o.browser)
	}
	if flags.Changed(flagCookiesFile) {
		settings.SetCookiesFile(o.cookiesFile)
	}
	if flags.Changed(flagSingleVideo) {
		settings.SetSingleVideo(o.singleVideo)
	}

	format, err := download.ParseFormat(settings.GetFormat())
	if err != nil {
		return download.Request{}, err
	}

	req := download.Request{
		Auth: download.Auth{
			Browser:     settings.GetBrowser(),
			CookiesFile: settings.GetCookiesFile(),
		},
		OutputDir:   settings.GetOutputDirectory(),
		Format:      format,
		SingleVideo: settings.GetSingleVideo(),
	}

	if err := validateCookies(req.CookiesFile); err != nil {
		return download.Request{}, err
	}
	if !req.Auth.IsSet() {
		platform.LogDebug("no cookie source set; pass --%s or --%s if YouTube answers 403", flagBrowser, flagCookiesFile)
	}
	return req, nil
}

// validateCookies fails on an unreadable cookies file and warns when it
// holds nothing for YouTube
func validateCookies(path string) error {
	if path == "" {
		return nil
	}

	cookies, err := platform.ParseNetscapeCookies(path)
	if err != nil {
		return errors.Wrap(err, "invalid cookies file")
	}

	platform.LogDebug("loaded %d cookies for %d domains from %s", cookies.Count, len(cookies.Domains), path)
	if !cookies.HasYouTubeCookies() {
		platform.LogWarn("cookies file %s holds no %s cookies", path, platform.YouTubeDomain)
	}
	return nil
}

// reportRetrieval logs retrieval failures and swallows them; anything else
// is returned to fail the command
func reportRetrieval(err error) error {
	if download.IsRetrieval(err) {
		platform.LogError("An error occurred: %v", err)
		return nil
	}
	return err
}
