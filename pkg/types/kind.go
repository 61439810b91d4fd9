package types

import (
	"fmt"
	"strings"
)

// Kind filters schema search results by SDL construct
type Kind string

const (
	KindAny       Kind = "any"
	KindType      Kind = "type"
	KindInput     Kind = "input"
	KindEnum      Kind = "enum"
	KindInterface Kind = "interface"
	KindUnion     Kind = "union"
	KindScalar    Kind = "scalar"

	// Pseudo kinds scoped to the fields of the root operation types
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// AllKinds lists every kind in the order advertised to clients
var AllKinds = []Kind{
	KindType,
	KindQuery,
	KindMutation,
	KindInput,
	KindEnum,
	KindInterface,
	KindUnion,
	KindScalar,
	KindAny,
}

// ParseKind converts a client supplied filter into a Kind.
// An empty string selects KindAny.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindAny, nil
	}
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsRootOperation reports whether k selects fields of Query or Mutation
func (k Kind) IsRootOperation() bool {
	return k == KindQuery || k == KindMutation
}

// RootTypeName returns the GraphQL type name for a root operation kind
// ("query" -> "Query"). It returns "" for other kinds.
func (k Kind) RootTypeName() string {
	if !k.IsRootOperation() {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// KindStrings returns the string form of kinds, for JSON schema enums
func KindStrings(kinds []Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
