package proxy

import (
	"io"
	"sync"
)

// lockedWriter serializes writes from several goroutines so that each
// Write lands whole
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	if lw, ok := w.(*lockedWriter); ok {
		return lw
	}
	return &lockedWriter{w: w}
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// writeLine writes parts followed by a newline as a single write
func (l *lockedWriter) writeLine(parts ...[]byte) error {
	n := 1
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	buf = append(buf, '\n')

	_, err := l.Write(buf)
	return err
}
