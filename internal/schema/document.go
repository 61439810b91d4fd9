package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSchemaNotFound is returned when the schema file does not exist
	ErrSchemaNotFound = errors.New("schema file not found")
	// ErrSchemaNotUTF8 is returned when the schema file is not valid UTF-8
	ErrSchemaNotUTF8 = errors.New("schema file is not valid UTF-8")
)

// Document is an SDL schema split into lines
type Document struct {
	path  string
	lines []string
}

// Load reads the schema at path fully into memory
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotUTF8, path)
	}

	doc := Parse(string(data))
	doc.path = path
	return doc, nil
}

// Parse builds a document from SDL text already in memory
func Parse(sdl string) *Document {
	return &Document{lines: strings.Split(sdl, "\n")}
}

// Path returns the file the document was loaded from, if any
func (d *Document) Path() string {
	return d.path
}

// Len returns the number of lines
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the text of the 1-based line n, or "" when n is out of range
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Lines returns the underlying line slice. Callers must not modify it.
func (d *Document) Lines() []string {
	return d.lines
}
