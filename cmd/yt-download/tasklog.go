package main

import (
	"io"
	"sync"
	"time"

	"github.com/ytget/ytkit/internal/download"
	"github.com/ytget/ytkit/internal/model"
	"github.com/ytget/ytkit/internal/platform"
)

// newDownloader returns the yt-dlp backed service with task logging attached.
// Progress bars go to progressOut unless it is nil.
func newDownloader(progressOut io.Writer) download.Downloader {
	service := download.NewService(download.NewYTDLP(progressOut))
	logger := newTaskLogger()
	service.SetUpdateCallback(logger.update)
	service.SetProgressCallback(logger.progress)
	return service
}

// taskLogger writes task state changes and finished files to the log
type taskLogger struct {
	mu   sync.Mutex
	done map[string]bool
}

func newTaskLogger() *taskLogger {
	return &taskLogger{done: make(map[string]bool)}
}

func (l *taskLogger) update(task *model.DownloadTask) {
	switch {
	case task.Status.IsActive():
		platform.LogDebug("%s: %s", task.GetDisplayTitle(), task.Status)
	case task.Status.IsFinished():
		platform.LogDebug("%s: %s after %s", task.GetDisplayTitle(), task.Status, task.Duration().Round(time.Millisecond))
	}
}

// progress logs each file once, when its last byte arrives
func (l *taskLogger) progress(p download.Progress) {
	if !p.Done() || p.Filename == "" {
		return
	}

	l.mu.Lock()
	seen := l.done[p.Filename]
	l.done[p.Filename] = true
	l.mu.Unlock()

	if !seen {
		platform.LogDebug("finished %s (%d bytes)", p.Filename, p.TotalBytes)
	}
}
