package proxy

import "bytes"

// LineSplitter reassembles newline-terminated lines from arbitrary chunks.
// An unterminated fragment is held until a later chunk completes it.
type LineSplitter struct {
	buf []byte
}

// Feed appends chunk and returns every line it completed, without the
// terminating newline. Returned slices do not alias chunk.
func (s *LineSplitter) Feed(chunk []byte) [][]byte {
	s.buf = append(s.buf, chunk...)

	var lines [][]byte
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		line := make([]byte, i)
		copy(line, s.buf[:i])
		lines = append(lines, line)
		s.buf = s.buf[i+1:]
	}

	// reclaim the consumed prefix
	if len(s.buf) == 0 {
		s.buf = nil
	}
	return lines
}

// Remainder returns and clears the pending unterminated fragment
func (s *LineSplitter) Remainder() []byte {
	rest := s.buf
	s.buf = nil
	return rest
}

// Pending reports the number of buffered bytes
func (s *LineSplitter) Pending() int {
	return len(s.buf)
}
