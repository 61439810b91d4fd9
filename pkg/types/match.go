package types

// Match represents a single schema line reported by a search
type Match struct {
	LineNumber int    // 1-based line in the schema document
	Line       string // Matched line with surrounding whitespace trimmed
	Context    string // Rendered window of neighbouring lines
}
