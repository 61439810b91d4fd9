package searcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/gqlsearch-mcp/internal/schema"
	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

const (
	// DefaultContextLines is used when a caller does not ask for a window size
	DefaultContextLines = 5
	// MaxReportedMatches caps the match blocks rendered in a report
	MaxReportedMatches = 20

	patternCacheSize = 256
	reportCacheSize  = 1000
)

// definitionHeader recognizes SDL construct headers on a trimmed line
var definitionHeader = regexp.MustCompile(`(?i)^(type|input|enum|interface|union|scalar)\s+`)

// SearchRequest contains parameters for a search operation
type SearchRequest struct {
	Query        string
	Kind         types.Kind
	ContextLines int  // Lines shown before and after each match
	UseCache     bool // Whether Report may serve a cached rendering
}

// SearchResponse contains search results and metadata
type SearchResponse struct {
	Query   string
	Kind    types.Kind
	Matches []types.Match // Structural matches first, then block matches

	StructuralMatches int
	BlockMatches      int
	Duration          time.Duration
}

// Total returns the number of matches found, including unrendered ones
func (r *SearchResponse) Total() int {
	return len(r.Matches)
}

// Searcher runs text searches over a schema document
type Searcher struct {
	doc      *schema.Document
	patterns *lru.Cache[string, *regexp.Regexp]
	reports  *lru.Cache[[32]byte, string]
}

// NewSearcher creates a new Searcher instance
func NewSearcher(doc *schema.Document) *Searcher {
	// The document never changes, so cached entries stay valid for the
	// lifetime of the searcher and only need a size bound.
	patterns, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to create pattern cache: %v", err))
	}
	reports, err := lru.New[[32]byte, string](reportCacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to create report cache: %v", err))
	}

	return &Searcher{
		doc:      doc,
		patterns: patterns,
		reports:  reports,
	}
}

// Document returns the schema the searcher runs against
func (s *Searcher) Document() *schema.Document {
	return s.doc
}

// Search performs a search based on the request parameters
func (s *Searcher) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	startTime := time.Now()

	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}

	re, err := s.compile(req.Query)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response := &SearchResponse{
		Query: req.Query,
		Kind:  req.Kind,
	}

	// Root operation kinds are answered by the block pass only
	if !req.Kind.IsRootOperation() {
		response.Matches = s.structuralMatches(re, req.Kind, req.ContextLines)
		response.StructuralMatches = len(response.Matches)
	} else {
		response.Matches = s.blockMatches(re, req.Kind, req.ContextLines)
		response.BlockMatches = len(response.Matches)
	}

	response.Duration = time.Since(startTime)
	return response, nil
}

// Report runs a search and renders the textual report returned to clients
func (s *Searcher) Report(ctx context.Context, req SearchRequest) (string, error) {
	if err := s.validateRequest(&req); err != nil {
		return "", err
	}

	key := computeQueryHash(req)
	if req.UseCache {
		if report, ok := s.reports.Get(key); ok {
			return report, nil
		}
	}

	response, err := s.Search(ctx, req)
	if err != nil {
		return "", err
	}

	report := FormatReport(response)
	if req.UseCache {
		s.reports.Add(key, report)
	}
	return report, nil
}

// validateRequest ensures search request is valid and fills defaults
func (s *Searcher) validateRequest(req *SearchRequest) error {
	if req.Query == "" {
		return types.ErrEmptyQuery
	}

	if req.Kind == "" {
		req.Kind = types.KindAny
	}
	if !req.Kind.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidKind, req.Kind)
	}

	// A window never reaches past the document, and the cap keeps i+c from overflowing
	req.ContextLines = max(0, min(req.ContextLines, s.doc.Len()))

	return nil
}

// compile returns the case-insensitive pattern for query, cached by query text
func (s *Searcher) compile(query string) (*regexp.Regexp, error) {
	if re, ok := s.patterns.Get(query); ok {
		return re, nil
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", types.ErrInvalidPattern, query, err)
	}

	s.patterns.Add(query, re)
	return re, nil
}

// structuralMatches scans every line, skipping definition headers of other kinds
func (s *Searcher) structuralMatches(re *regexp.Regexp, kind types.Kind, contextLines int) []types.Match {
	lines := s.doc.Lines()
	var matches []types.Match

	for i, line := range lines {
		if kind != types.KindAny && !eligibleForKind(line, kind) {
			continue
		}

		if re.MatchString(line) {
			matches = append(matches, newMatch(lines, i, contextLines))
		}
	}

	return matches
}

// blockMatches scans the bodies of the root type named by kind.
// Brace depth is a single running counter over raw characters, so braces
// inside descriptions or comments are counted too.
// Root operation kinds skip the structural pass, so every match they report
// lies inside the root type body.
func (s *Searcher) blockMatches(re *regexp.Regexp, kind types.Kind, contextLines int) []types.Match {
	lines := s.doc.Lines()
	header := "type " + kind.RootTypeName()

	var matches []types.Match
	inBlock := false
	depth := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inBlock {
			if strings.HasPrefix(trimmed, header) {
				depth = braceDelta(line)
				inBlock = !closesBlock(depth, line)
			}
			continue
		}

		depth += braceDelta(line)
		if closesBlock(depth, line) {
			inBlock = false
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if re.MatchString(line) {
			matches = append(matches, newMatch(lines, i, contextLines))
		}
	}

	return matches
}

// eligibleForKind reports whether line may match under a structural kind filter
func eligibleForKind(line string, kind types.Kind) bool {
	trimmed := strings.TrimSpace(line)
	if !definitionHeader.MatchString(trimmed) {
		return true
	}

	keyword := strings.ToLower(strings.Fields(trimmed)[0])
	return types.Kind(keyword) == kind
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

func closesBlock(depth int, line string) bool {
	return depth <= 0 && strings.Contains(line, "}")
}

// newMatch builds the match record for the 0-based line index i
func newMatch(lines []string, i, contextLines int) types.Match {
	return types.Match{
		LineNumber: i + 1,
		Line:       strings.TrimSpace(lines[i]),
		Context:    renderContext(lines, i, contextLines),
	}
}

// renderContext renders lines around index i, marking i with ">>> "
func renderContext(lines []string, i, contextLines int) string {
	start := max(0, i-contextLines)
	end := min(len(lines)-1, i+contextLines)

	var b strings.Builder
	for j := start; j <= end; j++ {
		if j > start {
			b.WriteByte('\n')
		}
		marker := "    "
		if j == i {
			marker = ">>> "
		}
		fmt.Fprintf(&b, "%d:%s%s", j+1, marker, lines[j])
	}
	return b.String()
}

// computeQueryHash computes a unique hash for a search request
func computeQueryHash(req SearchRequest) [32]byte {
	var data strings.Builder
	data.WriteString(req.Query)
	data.WriteString("|")
	data.WriteString(string(req.Kind))
	data.WriteString("|")
	data.WriteString(fmt.Sprintf("%d", req.ContextLines))

	return sha256.Sum256([]byte(data.String()))
}
