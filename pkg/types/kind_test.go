package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "empty defaults to any", input: "", want: KindAny},
		{name: "any", input: "any", want: KindAny},
		{name: "type", input: "type", want: KindType},
		{name: "query", input: "query", want: KindQuery},
		{name: "mutation", input: "mutation", want: KindMutation},
		{name: "scalar", input: "scalar", want: KindScalar},
		{name: "unknown", input: "directive", wantErr: true},
		{name: "wrong case", input: "Type", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_RootTypeName(t *testing.T) {
	assert.Equal(t, "Query", KindQuery.RootTypeName())
	assert.Equal(t, "Mutation", KindMutation.RootTypeName())
	assert.Equal(t, "", KindType.RootTypeName())
	assert.Equal(t, "", KindAny.RootTypeName())
}

func TestKind_IsRootOperation(t *testing.T) {
	for _, k := range AllKinds {
		want := k == KindQuery || k == KindMutation
		assert.Equal(t, want, k.IsRootOperation(), "kind %s", k)
	}
}

func TestKindStrings(t *testing.T) {
	got := KindStrings(AllKinds)
	assert.Equal(t, []string{"type", "query", "mutation", "input", "enum", "interface", "union", "scalar", "any"}, got)
}
