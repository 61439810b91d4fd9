// Package types provides shared type definitions for the gqlsearch MCP proxy.
//
// This package defines the domain types used by the schema searcher, the
// MCP layer and the CLI: the SDL construct filter (Kind) and the match
// record (Match).
//
// # Kinds
//
// Kind narrows a schema search to one SDL construct:
//
//	kind, err := types.ParseKind("input")
//	if err != nil {
//	    return err // wraps types.ErrInvalidKind
//	}
//
// The structural kinds (type, input, enum, interface, union, scalar) filter
// definition header lines by their leading keyword. The pseudo kinds query
// and mutation restrict matches to the body of the root Query or Mutation
// type:
//
//	types.KindQuery.IsRootOperation() // true
//	types.KindQuery.RootTypeName()    // "Query"
//
// # Matches
//
// Match carries a 1-based line number, the trimmed line text and a rendered
// context window:
//
//	match := types.Match{
//	    LineNumber: 42,
//	    Line:       "patient(id: ID): Patient",
//	    Context:    "41:    type Query {\n42:>>>   patient(id: ID): Patient",
//	}
package types
