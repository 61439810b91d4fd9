package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strs(lines [][]byte) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

func TestLineSplitter(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []string
		want      []string
		remainder string
	}{
		{
			name:   "single complete line",
			chunks: []string{"{\"id\":1}\n"},
			want:   []string{"{\"id\":1}"},
		},
		{
			name:   "line split across chunks",
			chunks: []string{"{\"jsonrpc\":", "\"2.0\",\"id\"", ":1}\n"},
			want:   []string{"{\"jsonrpc\":\"2.0\",\"id\":1}"},
		},
		{
			name:   "several lines in one chunk",
			chunks: []string{"a\nb\n\nc\n"},
			want:   []string{"a", "b", "", "c"},
		},
		{
			name:      "unterminated tail is retained",
			chunks:    []string{"a\nb", "c"},
			want:      []string{"a"},
			remainder: "bc",
		},
		{
			name:   "carriage return is kept",
			chunks: []string{"a\r\n"},
			want:   []string{"a\r"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s LineSplitter
			var got []string
			for _, c := range tt.chunks {
				got = append(got, strs(s.Feed([]byte(c)))...)
			}
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, len(tt.remainder), s.Pending())
			assert.Equal(t, tt.remainder, string(s.Remainder()))
			assert.Zero(t, s.Pending())
		})
	}
}

func TestLineSplitter_DoesNotAliasInput(t *testing.T) {
	var s LineSplitter
	chunk := []byte("abc\n")
	lines := s.Feed(chunk)
	chunk[0] = 'X'
	assert.Equal(t, "abc", string(lines[0]))
}
