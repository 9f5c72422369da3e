package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings file lookup
const (
	EnvConfigPath  = "YTKIT_CONFIG"
	ConfigDirName  = "ytkit"
	ConfigFileName = "config.yaml"
)

// Default values
const (
	DefaultOutputDir   = "downloads"
	DefaultFormat      = "mp4"
	DefaultSingleVideo = false
)

// File mirrors the YAML settings file
type File struct {
	OutputDir   string `yaml:"output_dir"`
	Format      string `yaml:"format"`
	Browser     string `yaml:"browser"`
	CookiesFile string `yaml:"cookies_file"`
	SingleVideo bool   `yaml:"single_video"`
}

// Settings manages downloader defaults
type Settings struct {
	path   string
	values File
}

// NewSettings creates settings holding only defaults
func NewSettings() *Settings {
	return &Settings{
		values: File{
			OutputDir:   DefaultOutputDir,
			Format:      DefaultFormat,
			SingleVideo: DefaultSingleVideo,
		},
	}
}

// ResolvePath picks the settings file: explicit path, then $YTKIT_CONFIG,
// then the per-user config directory. An empty result means no file.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ConfigDirName, ConfigFileName)
}

// Load reads settings from path. A missing file yields defaults; an explicit
// but unreadable or malformed file is an error.
func Load(path string) (*Settings, error) {
	s := NewSettings()
	if path == "" {
		return s, nil
	}
	s.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	s.SetOutputDirectory(file.OutputDir)
	s.SetFormat(file.Format)
	s.SetBrowser(file.Browser)
	s.SetCookiesFile(file.CookiesFile)
	s.SetSingleVideo(file.SingleVideo)
	return s, nil
}

// Path returns the file the settings were loaded from, if any
func (s *Settings) Path() string {
	return s.path
}

// GetOutputDirectory returns the configured download directory
func (s *Settings) GetOutputDirectory() string {
	return s.values.OutputDir
}

// SetOutputDirectory sets the download directory; empty restores the default
func (s *Settings) SetOutputDirectory(dir string) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultOutputDir
	}
	s.values.OutputDir = dir
}

// GetFormat returns the configured output format
func (s *Settings) GetFormat() string {
	return s.values.Format
}

// SetFormat sets the output format; empty restores the default
func (s *Settings) SetFormat(format string) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}
	s.values.Format = format
}

// GetBrowser returns the browser to read cookies from
func (s *Settings) GetBrowser() string {
	return s.values.Browser
}

// SetBrowser sets the browser to read cookies from
func (s *Settings) SetBrowser(browser string) {
	s.values.Browser = strings.TrimSpace(browser)
}

// GetCookiesFile returns the Netscape cookies file path
func (s *Settings) GetCookiesFile() string {
	return s.values.CookiesFile
}

// SetCookiesFile sets the Netscape cookies file path
func (s *Settings) SetCookiesFile(path string) {
	s.values.CookiesFile = strings.TrimSpace(path)
}

// GetSingleVideo returns whether playlists are ignored by default
func (s *Settings) GetSingleVideo() bool {
	return s.values.SingleVideo
}

// SetSingleVideo sets whether playlists are ignored by default
func (s *Settings) SetSingleVideo(single bool) {
	s.values.SingleVideo = single
}
