// Package searcher implements line-oriented text search over a GraphQL SDL document.
//
// The searcher is deliberately not a GraphQL parser. It runs a
// case-insensitive regular expression over raw lines and uses two light
// structural heuristics to honor the requested element type.
//
// # Basic Usage
//
//	doc, _ := schema.Load("schemas/healthie-schema.graphql")
//	s := searcher.NewSearcher(doc)
//
//	report, err := s.Report(ctx, searcher.SearchRequest{
//	    Query:        "patientId",
//	    Kind:         types.KindAny,
//	    ContextLines: searcher.DefaultContextLines,
//	})
//
// # Element Types
//
// Structural kinds (type, input, enum, interface, union, scalar):
//
//   - Every line is tested against the pattern
//   - Definition header lines ("input Foo {") are skipped unless their
//     leading keyword equals the requested kind
//
// Root operation kinds (query, mutation):
//
//   - Only lines inside the body of "type Query" / "type Mutation" are tested
//   - Blank lines and "#" comments are ignored
//   - The body is delimited by a running brace counter that starts on the
//     header line
//
// # Reports
//
// FormatReport renders at most MaxReportedMatches match blocks, each with a
// context window:
//
//	Found 2 matches for "patientId":
//
//	Line 12: patientId: ID
//	Context:
//	11:    type Appointment {
//	12:>>>   patientId: ID
//	13:    }
//
//	---
//
// The header always carries the full match count, and a trailing notice
// reports how many matches were not rendered.
//
// # Caching
//
// Compiled patterns and rendered reports are kept in LRU caches. The
// document is immutable, so entries never go stale.
package searcher
