package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode tells how a URL is retrieved and how its files are named
type Mode string

const (
	// ModeCollection downloads every entry of a playlist with an index prefix
	ModeCollection Mode = "collection"

	// ModeSingle downloads exactly one video
	ModeSingle Mode = "single"
)

// TaskIDPrefix is prepended to every generated task ID
const TaskIDPrefix = "task-"

// DownloadTask represents a single invocation of the downloader
type DownloadTask struct {
	ID         string
	URL        string
	Mode       Mode
	Format     string
	Title      string     // title reported by the probe
	Status     TaskStatus // current state
	LastError  string     // last error message if any
	OutputDir  string     // directory the files are written to
	StartedAt  time.Time  // when the task was created
	FinishedAt time.Time  // when the task reached a finished state
}

// NewDownloadTask creates a pending task for url
func NewDownloadTask(url string) *DownloadTask {
	return &DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		Status:    TaskStatusPending,
		StartedAt: time.Now(),
	}
}

// Finish moves the task to its final state, recording err if any
func (dt *DownloadTask) Finish(err error) {
	if err != nil {
		dt.Status = TaskStatusError
		dt.LastError = err.Error()
	} else {
		dt.Status = TaskStatusCompleted
	}
	dt.FinishedAt = time.Now()
}

// Duration returns how long the task ran, or zero while it is not finished
func (dt *DownloadTask) Duration() time.Duration {
	if dt.FinishedAt.IsZero() {
		return 0
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}

// GetDisplayTitle returns title or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.URL
}

// generateTaskID generates a unique, time ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
