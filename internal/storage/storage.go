package storage

import (
	"context"

	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// DefaultListLimit is used when ListInterceptions gets a non-positive limit
const DefaultListLimit = 50

// Storage defines the interface for the interception audit log
type Storage interface {
	// RecordInterception stores in and sets its ID
	RecordInterception(ctx context.Context, in *types.Interception) error

	// ListInterceptions returns the most recent interceptions, newest first
	ListInterceptions(ctx context.Context, limit int) ([]*types.Interception, error)

	// CountByAction returns the number of interceptions per action
	CountByAction(ctx context.Context) (map[string]int, error)

	Close() error
}
