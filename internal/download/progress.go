package download

import (
	"io"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

// Progress constants
const (
	ProgressInterval = 250 * time.Millisecond
	ProgressBarWidth = 64
	maxBarNameLength = 40
)

// Progress is a snapshot of one file being downloaded
type Progress struct {
	Filename        string
	Title           string
	DownloadedBytes int64
	TotalBytes      int64
}

// Percent returns completion in the 0-100 range, or 0 when the size is unknown
func (p Progress) Percent() float64 {
	if p.TotalBytes <= 0 {
		return 0
	}
	pct := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Done reports whether every byte of a known size arrived
func (p Progress) Done() bool {
	return p.TotalBytes > 0 && p.DownloadedBytes >= p.TotalBytes
}

// ProgressFunc receives progress snapshots
type ProgressFunc func(Progress)

// progressBars renders one bar per downloaded file
type progressBars struct {
	mu    sync.Mutex
	p     *mpb.Progress
	bars  map[string]*mpb.Bar
	order []string
}

func newProgressBars(w io.Writer) *progressBars {
	return &progressBars{
		p:    mpb.New(mpb.WithWidth(ProgressBarWidth), mpb.WithOutput(w)),
		bars: make(map[string]*mpb.Bar),
	}
}

// Update creates or advances the bar of the snapshot's file. Snapshots
// without a known size are skipped.
func (pb *progressBars) Update(p Progress) {
	if p.TotalBytes <= 0 {
		return
	}

	key := p.Filename
	if key == "" {
		key = p.Title
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	bar, ok := pb.bars[key]
	if !ok {
		bar = pb.p.AddBar(p.TotalBytes,
			mpb.PrependDecorators(
				decor.Name(barName(p), decor.WC{W: maxBarNameLength + 1, C: decor.DidentRight}),
				decor.CountersKibiByte("% .2f / % .2f"),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WCSyncSpace),
			),
		)
		pb.bars[key] = bar
		pb.order = append(pb.order, key)
	}

	if bar.Completed() {
		return
	}
	if p.Done() {
		bar.SetTotal(p.TotalBytes, true)
		return
	}
	bar.SetTotal(p.TotalBytes, false)
	bar.SetCurrent(p.DownloadedBytes)
}

// Wait stops bars that never completed and flushes the output
func (pb *progressBars) Wait() {
	pb.mu.Lock()
	for _, key := range pb.order {
		if bar := pb.bars[key]; !bar.Completed() {
			bar.Abort(false)
		}
	}
	pb.mu.Unlock()

	pb.p.Wait()
}

func barName(p Progress) string {
	name := p.Title
	if name == "" {
		name = p.Filename
	}
	runes := []rune(name)
	if len(runes) > maxBarNameLength {
		return string(runes[:maxBarNameLength-3]) + "..."
	}
	return name
}
