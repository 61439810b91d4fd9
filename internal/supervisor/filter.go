package supervisor

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// StartupWindow is how long startup noise is suppressed after launch
const StartupWindow = 2 * time.Second

// startupMarkers identify stderr chunks dropped during the startup window
var startupMarkers = [][]byte{
	[]byte("Received schema:"),
	[]byte("Received 0 operations:"),
	[]byte("Apollo MCP Server v"),
}

// StartupFilter drops whole stderr chunks that contain a startup marker
// while the window is open. Everything else is written through unchanged.
type StartupFilter struct {
	mu       sync.Mutex
	w        io.Writer
	deadline time.Time
	now      func() time.Time
}

// NewStartupFilter opens a suppression window of the given length now
func NewStartupFilter(w io.Writer, window time.Duration) *StartupFilter {
	return newStartupFilter(w, window, time.Now)
}

func newStartupFilter(w io.Writer, window time.Duration, now func() time.Time) *StartupFilter {
	return &StartupFilter{
		w:        w,
		deadline: now().Add(window),
		now:      now,
	}
}

// Write forwards p unless it is startup noise. Dropped chunks report
// success so io.Copy keeps going.
func (f *StartupFilter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.suppressing() && isStartupNoise(p) {
		return len(p), nil
	}
	return f.w.Write(p)
}

func (f *StartupFilter) suppressing() bool {
	return f.now().Before(f.deadline)
}

func isStartupNoise(p []byte) bool {
	for _, marker := range startupMarkers {
		if bytes.Contains(p, marker) {
			return true
		}
	}
	return false
}
