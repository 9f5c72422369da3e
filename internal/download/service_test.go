package download

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/ytget/ytkit/internal/model"
	"github.com/ytget/ytkit/internal/platform"
)

// fakeExtractor records calls instead of running yt-dlp
type fakeExtractor struct {
	info       *ProbeInfo
	probeErr   error
	fetchErr   error
	comments   string
	commentErr error

	probed     []ProbeOptions
	fetched    []Options
	commented  []CommentsOptions
	dirOnProbe bool
	checkDir   string
}

func (f *fakeExtractor) Probe(_ context.Context, _ string, opts ProbeOptions) (*ProbeInfo, error) {
	f.probed = append(f.probed, opts)
	if f.checkDir != "" {
		info, err := os.Stat(f.checkDir)
		f.dirOnProbe = err == nil && info.IsDir()
	}
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.info, nil
}

func (f *fakeExtractor) Fetch(_ context.Context, _ string, opts Options, onProgress ProgressFunc) error {
	f.fetched = append(f.fetched, opts)
	if onProgress != nil {
		p := Progress{Filename: "a.mp4", DownloadedBytes: 10, TotalBytes: 10}
		onProgress(p)
	}
	return f.fetchErr
}

func (f *fakeExtractor) Comments(_ context.Context, _ string, opts CommentsOptions) ([]byte, error) {
	f.commented = append(f.commented, opts)
	return []byte(f.comments), f.commentErr
}

func (f *fakeExtractor) CommandLine(_ context.Context, url string, opts Options) string {
	return "yt-dlp --output " + opts.OutputTemplate() + " " + url
}

const testURL = "https://www.youtube.com/playlist?list=PL123"

func TestDownload_Collection(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")
	fake := &fakeExtractor{
		info:     &ProbeInfo{Title: "My List", HasEntries: true},
		checkDir: dir,
	}
	service := NewService(fake)

	var statuses []model.TaskStatus
	service.SetUpdateCallback(func(task *model.DownloadTask) {
		statuses = append(statuses, task.Status)
	})
	var progress []Progress
	service.SetProgressCallback(func(p Progress) {
		progress = append(progress, p)
	})

	task, err := service.Download(context.Background(), testURL, Request{OutputDir: dir, Format: FormatMP3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !fake.dirOnProbe {
		t.Error("expected output directory to exist before the probe")
	}
	if len(fake.fetched) != 1 {
		t.Fatalf("expected one fetch, got %d", len(fake.fetched))
	}

	opts := fake.fetched[0]
	if !opts.Collection {
		t.Error("expected collection options for a playlist")
	}
	if opts.OutputTemplate() != filepath.Join(dir, CollectionTemplate) {
		t.Errorf("unexpected output template %s", opts.OutputTemplate())
	}
	if opts.FormatSelector() != "bestaudio/best" {
		t.Errorf("unexpected format selector %s", opts.FormatSelector())
	}

	if task.Status != model.TaskStatusCompleted {
		t.Errorf("expected Completed, got %s", task.Status)
	}
	if task.Mode != model.ModeCollection || task.Title != "My List" || task.Format != "mp3" {
		t.Errorf("unexpected task: %+v", task)
	}

	expected := []model.TaskStatus{
		model.TaskStatusPending,
		model.TaskStatusProbing,
		model.TaskStatusDownloading,
		model.TaskStatusCompleted,
	}
	if len(statuses) != len(expected) {
		t.Fatalf("expected statuses %v, got %v", expected, statuses)
	}
	for i := range expected {
		if statuses[i] != expected[i] {
			t.Errorf("status %d: expected %s, got %s", i, expected[i], statuses[i])
		}
	}

	if len(progress) != 1 || !progress[0].Done() {
		t.Errorf("expected progress to be forwarded, got %+v", progress)
	}
}

func TestDownload_SingleVideo(t *testing.T) {
	tests := []struct {
		name   string
		info   *ProbeInfo
		single bool
	}{
		{"video URL", &ProbeInfo{Title: "A Video"}, false},
		{"playlist forced to single", &ProbeInfo{Title: "My List", HasEntries: true}, true},
		{"empty probe", &ProbeInfo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			fake := &fakeExtractor{info: tt.info}

			task, err := NewService(fake).Download(context.Background(), testURL, Request{OutputDir: dir, SingleVideo: tt.single})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			opts := fake.fetched[0]
			if opts.Collection {
				t.Error("expected single video options")
			}
			if opts.OutputTemplate() != filepath.Join(dir, SingleTemplate) {
				t.Errorf("unexpected output template %s", opts.OutputTemplate())
			}
			if opts.NoPlaylist != tt.single || fake.probed[0].NoPlaylist != tt.single {
				t.Errorf("expected NoPlaylist=%v on probe and fetch", tt.single)
			}
			if opts.Format != DefaultFormat {
				t.Errorf("expected default format, got %s", opts.Format)
			}
			if task.Mode != model.ModeSingle {
				t.Errorf("expected single mode, got %s", task.Mode)
			}
			if tt.info.Title == "" && task.Title != UnknownTitle {
				t.Errorf("expected %s title, got %s", UnknownTitle, task.Title)
			}
		})
	}
}

func TestDownload_RetrievalErrors(t *testing.T) {
	tests := []struct {
		name      string
		fake      *fakeExtractor
		wantFetch bool
	}{
		{
			name:      "probe failure",
			fake:      &fakeExtractor{probeErr: errors.New("HTTP Error 403: Forbidden")},
			wantFetch: false,
		},
		{
			name:      "fetch failure",
			fake:      &fakeExtractor{info: &ProbeInfo{}, fetchErr: errors.New("network unreachable")},
			wantFetch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewService(tt.fake).Download(context.Background(), testURL, Request{OutputDir: t.TempDir()})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsRetrieval(err) {
				t.Errorf("expected retrieval error, got %v", err)
			}
			if task.Status != model.TaskStatusError || task.LastError == "" {
				t.Errorf("expected task in error state, got %s (%q)", task.Status, task.LastError)
			}
			if (len(tt.fake.fetched) > 0) != tt.wantFetch {
				t.Errorf("expected fetch=%v, got %d fetches", tt.wantFetch, len(tt.fake.fetched))
			}
		})
	}
}

func TestDownload_OutputDirectoryFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	fake := &fakeExtractor{info: &ProbeInfo{}}
	task, err := NewService(fake).Download(context.Background(), testURL, Request{OutputDir: blocker})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if IsRetrieval(err) {
		t.Errorf("expected a plain error, got retrieval error %v", err)
	}
	if len(fake.probed) != 0 {
		t.Error("expected no probe after directory failure")
	}
	if task.Status != model.TaskStatusError {
		t.Errorf("expected Error status, got %s", task.Status)
	}
}

func TestDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-created")
	fake := &fakeExtractor{info: &ProbeInfo{HasEntries: true}}

	line, err := NewService(fake).DryRun(context.Background(), testURL, Request{OutputDir: dir})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := "yt-dlp --output " + filepath.Join(dir, CollectionTemplate) + " " + testURL
	if line != expected {
		t.Errorf("expected %q, got %q", expected, line)
	}
	if len(fake.fetched) != 0 {
		t.Error("expected no fetch during a dry run")
	}
	if platform.FileExists(dir) {
		t.Error("expected dry run not to create the output directory")
	}
}

func TestExportComments(t *testing.T) {
	tests := []struct {
		name    string
		single  bool
		lines   string
		grouped bool
	}{
		{"playlist", false, commentLines, true},
		{"single video", true, `{"id": "v1", "title": "First", "comments": [{"id": "c1"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "comments.json")
			fake := &fakeExtractor{comments: tt.lines}

			groups, err := NewService(fake).ExportComments(context.Background(), testURL, path, Request{SingleVideo: tt.single})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(groups) == 0 {
				t.Fatal("expected groups")
			}
			if fake.commented[0].NoPlaylist != tt.single {
				t.Errorf("expected NoPlaylist=%v", tt.single)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read export: %v", err)
			}
			if got := containsKey(data, model.KeyComments); got != tt.grouped {
				t.Errorf("expected grouped=%v, got document %s", tt.grouped, data)
			}
		})
	}
}

func TestExportComments_RetrievalError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.json")
	fake := &fakeExtractor{commentErr: errors.New("comments are disabled")}

	_, err := NewService(fake).ExportComments(context.Background(), testURL, path, Request{})
	if !IsRetrieval(err) {
		t.Errorf("expected retrieval error, got %v", err)
	}
	if platform.FileExists(path) {
		t.Error("expected no file on failure")
	}
}

func containsKey(data []byte, key string) bool {
	return bytes.Contains(data, []byte(`"`+key+`"`))
}
