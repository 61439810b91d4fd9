package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()
	// Use in-memory database for testing
	storage, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NotNil(t, storage)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestNewSQLiteStorage(t *testing.T) {
	storage := setupTestDB(t)
	assert.NotNil(t, storage.db)

	version, err := SchemaVersion(context.Background(), storage.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyMigrations(ctx, storage.db))

	var n int
	require.NoError(t, storage.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version").Scan(&n))
	assert.Equal(t, len(AllMigrations), n)
}

func TestRollbackMigration(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, RollbackMigration(ctx, storage.db))
	version, err := SchemaVersion(ctx, storage.db)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)

	// Re-applying brings the outcome column back
	require.NoError(t, ApplyMigrations(ctx, storage.db))
	version, err = SchemaVersion(ctx, storage.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestRecordInterception(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	in := &types.Interception{
		SessionID: "s1",
		RequestID: "7",
		Action:    types.ActionSearch,
		Tool:      "search_schema",
		Detail:    "patient",
		Outcome:   "ok",
		Duration:  1500 * time.Microsecond,
		CreatedAt: time.UnixMilli(1700000000123),
	}
	require.NoError(t, storage.RecordInterception(ctx, in))
	assert.Greater(t, in.ID, int64(0))

	got, err := storage.ListInterceptions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in.ID, got[0].ID)
	assert.Equal(t, "s1", got[0].SessionID)
	assert.Equal(t, "7", got[0].RequestID)
	assert.Equal(t, types.ActionSearch, got[0].Action)
	assert.Equal(t, "search_schema", got[0].Tool)
	assert.Equal(t, "patient", got[0].Detail)
	assert.Equal(t, "ok", got[0].Outcome)
	assert.Equal(t, 1500*time.Microsecond, got[0].Duration)
	assert.True(t, in.CreatedAt.Equal(got[0].CreatedAt))
}

func TestRecordInterception_Validation(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	err := storage.RecordInterception(ctx, &types.Interception{SessionID: "s1", Action: "forward"})
	assert.ErrorIs(t, err, types.ErrInvalidAction)

	err = storage.RecordInterception(ctx, &types.Interception{Action: types.ActionBlocked})
	assert.ErrorIs(t, err, types.ErrMissingSession)
}

func TestRecordInterception_DefaultsCreatedAt(t *testing.T) {
	storage := setupTestDB(t)
	in := &types.Interception{SessionID: "s1", Action: types.ActionBlocked, Tool: "introspect", Detail: "Query"}

	before := time.Now().Add(-time.Second)
	require.NoError(t, storage.RecordInterception(context.Background(), in))
	assert.True(t, in.CreatedAt.After(before))
}

func TestListInterceptions_NewestFirstAndLimit(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	for _, detail := range []string{"a", "b", "c"} {
		require.NoError(t, storage.RecordInterception(ctx, &types.Interception{
			SessionID: "s1",
			Action:    types.ActionSearch,
			Tool:      "search_schema",
			Detail:    detail,
		}))
	}

	got, err := storage.ListInterceptions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Detail)
	assert.Equal(t, "b", got[1].Detail)

	// Non-positive limits use the default
	got, err = storage.ListInterceptions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestListInterceptions_Empty(t *testing.T) {
	storage := setupTestDB(t)
	got, err := storage.ListInterceptions(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountByAction(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	rows := []*types.Interception{
		{SessionID: "s1", Action: types.ActionSearch, Tool: "search_schema"},
		{SessionID: "s1", Action: types.ActionSearch, Tool: "search_schema"},
		{SessionID: "s2", Action: types.ActionBlocked, Tool: "introspect"},
	}
	for _, in := range rows {
		require.NoError(t, storage.RecordInterception(ctx, in))
	}

	counts, err := storage.CountByAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{types.ActionSearch: 2, types.ActionBlocked: 1}, counts)
}

func TestNewSQLiteStorage_FilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	storage, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.RecordInterception(ctx, &types.Interception{
		SessionID: "s1", Action: types.ActionBlocked, Tool: "introspect", Detail: "Mutation",
	}))
	require.NoError(t, storage.Close())

	reopened, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.ListInterceptions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mutation", got[0].Detail)
}
