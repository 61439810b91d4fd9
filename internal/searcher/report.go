package searcher

import (
	"fmt"
	"strings"

	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// FormatReport renders a search response as the text returned by search_schema
func FormatReport(resp *SearchResponse) string {
	scope := ""
	if resp.Kind != types.KindAny && resp.Kind != "" {
		scope = fmt.Sprintf(" in %s definitions", resp.Kind)
	}

	total := resp.Total()
	if total == 0 {
		return fmt.Sprintf("No matches found for \"%s\"%s", resp.Query, scope)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matches for \"%s\"%s:\n\n", total, resp.Query, scope)

	shown := resp.Matches
	if len(shown) > MaxReportedMatches {
		shown = shown[:MaxReportedMatches]
	}
	for _, m := range shown {
		fmt.Fprintf(&b, "Line %d: %s\n", m.LineNumber, m.Line)
		fmt.Fprintf(&b, "Context:\n%s\n\n", m.Context)
		b.WriteString("---\n\n")
	}

	if total > MaxReportedMatches {
		fmt.Fprintf(&b, "\n... and %d more matches. Refine your search for more specific results.", total-MaxReportedMatches)
	}

	return b.String()
}
