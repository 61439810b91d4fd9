// Package schema loads a GraphQL SDL document and exposes it as an
// immutable, 1-based sequence of lines.
//
// The document is read once at startup and never changes afterwards, so a
// single *Document is safe to share between goroutines:
//
//	doc, err := schema.Load("/path/to/schema.graphql")
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(doc.Len())     // number of lines
//	fmt.Println(doc.Line(1))   // first line
//
// Lines are split on '\n' only. A trailing newline yields a final empty
// line, and carriage returns are kept as part of the line text.
package schema
