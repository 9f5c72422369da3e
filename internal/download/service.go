package download

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/ytget/ytkit/internal/model"
	"github.com/ytget/ytkit/internal/platform"
)

// Service handles download operations
type Service struct {
	extractor  Extractor
	onUpdate   func(*model.DownloadTask) // called on every status change
	onProgress ProgressFunc
}

// NewService creates a new download service
func NewService(extractor Extractor) *Service {
	return &Service{extractor: extractor}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// SetProgressCallback sets the callback receiving download progress
func (s *Service) SetProgressCallback(callback ProgressFunc) {
	s.onProgress = callback
}

// Plan probes url and resolves the fetch options without downloading.
// Probe failures are returned as ErrRetrieval with the task in Error state.
func (s *Service) Plan(ctx context.Context, url string, req Request) (*model.DownloadTask, Options, error) {
	req = normalizeRequest(req)
	task := s.newTask(url, req)
	opts, err := s.plan(ctx, task, req)
	return task, opts, err
}

// Download creates the output directory, probes url and fetches it.
// Failing to create the directory is returned as a plain error; probe and
// fetch failures are marked ErrRetrieval.
func (s *Service) Download(ctx context.Context, url string, req Request) (*model.DownloadTask, error) {
	req = normalizeRequest(req)
	task := s.newTask(url, req)

	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		err = errors.Wrapf(err, "failed to create output directory %s", req.OutputDir)
		s.finish(task, err)
		return task, err
	}

	opts, err := s.plan(ctx, task, req)
	if err != nil {
		return task, err
	}

	s.setStatus(task, model.TaskStatusDownloading)
	platform.LogGeneral("Downloading to: %s", req.OutputDir)

	if err := s.extractor.Fetch(ctx, url, opts, s.onProgress); err != nil {
		err = retrievalError(err, "failed to download %s", url)
		s.finish(task, err)
		return task, err
	}

	s.finish(task, nil)
	platform.LogGeneral("Download completed successfully!")
	return task, nil
}

// DryRun probes url and returns the fetch command line instead of running it
func (s *Service) DryRun(ctx context.Context, url string, req Request) (string, error) {
	_, opts, err := s.Plan(ctx, url, req)
	if err != nil {
		return "", err
	}
	return s.extractor.CommandLine(ctx, url, opts), nil
}

// ExportComments fetches the comments of every video of url and saves them
// to path as a grouped document, or as a flat list when single mode
// returned exactly one video.
func (s *Service) ExportComments(ctx context.Context, url, path string, req Request) ([]*model.Group, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", path)
	}

	platform.LogGeneral("Fetching comments for %s...", url)
	data, err := s.extractor.Comments(ctx, url, NewCommentsOptions(req))
	if err != nil {
		return nil, retrievalError(err, "failed to fetch comments for %s", url)
	}

	groups, err := ParseCommentGroups(bytes.NewReader(data))
	if err != nil {
		return nil, retrievalError(err, "unexpected comments output for %s", url)
	}

	flat := req.SingleVideo && len(groups) == 1
	if err := SaveComments(path, groups, flat); err != nil {
		return groups, err
	}

	platform.LogGeneral("Saved %d comments from %d videos to %s", CountComments(groups), len(groups), path)
	return groups, nil
}

// plan runs the probe for task and picks the output naming
func (s *Service) plan(ctx context.Context, task *model.DownloadTask, req Request) (Options, error) {
	s.setStatus(task, model.TaskStatusProbing)
	platform.LogGeneral("Analyzing URL: %s...", task.URL)

	info, err := s.extractor.Probe(ctx, task.URL, NewProbeOptions(req))
	if err != nil {
		err = retrievalError(err, "failed to analyze %s", task.URL)
		s.finish(task, err)
		return Options{}, err
	}

	collection := info.IsCollection(req.SingleVideo)
	task.Title = info.DisplayTitle()
	if collection {
		task.Mode = model.ModeCollection
		platform.LogGeneral("Detected Playlist: %s", task.Title)
	} else {
		task.Mode = model.ModeSingle
		platform.LogGeneral("Detected Single Video: %s", task.Title)
	}
	if info.EntryCount > 0 {
		platform.LogDebug("probe reported %d entries", info.EntryCount)
	}

	return NewOptions(req, collection), nil
}

func (s *Service) newTask(url string, req Request) *model.DownloadTask {
	task := model.NewDownloadTask(url)
	task.Format = req.Format.String()
	task.OutputDir = req.OutputDir
	if req.SingleVideo {
		task.Mode = model.ModeSingle
	}
	s.notifyUpdate(task)
	return task
}

func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	task.Status = status
	s.notifyUpdate(task)
}

func (s *Service) finish(task *model.DownloadTask, err error) {
	task.Finish(err)
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// normalizeRequest fills in defaults for empty fields
func normalizeRequest(req Request) Request {
	if req.Format == "" {
		req.Format = DefaultFormat
	}
	if req.OutputDir == "" {
		req.OutputDir = "."
	}
	return req
}
