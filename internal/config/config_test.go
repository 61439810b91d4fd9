package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSelectedEnvironment, EnvAPIKey, EnvSchemaFile, EnvServerPath, EnvAuditDB, EnvBaseDir} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, filepath.Join(dir, "schemas", "healthie-schema.graphql"), cfg.SchemaFile)
	assert.Equal(t, filepath.Join(dir, "schemas"), cfg.SchemaDir)
	assert.Equal(t, filepath.Join(dir, "apollo-mcp-server"), cfg.ServerPath)
	assert.Empty(t, cfg.AuditDB)
}

func TestLoad_APIKeyFromProcess(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "HEALTHIE_API_KEY=from-dotenv\nGQLSEARCH_SERVER_PATH=bin/server\n")
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvAPIKey)
		_ = os.Unsetenv(EnvServerPath)
	})

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, filepath.Join(dir, "bin", "server"), cfg.ServerPath)
}

func TestLoad_ProcessWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "HEALTHIE_API_KEY=from-dotenv\n")
	t.Setenv(EnvAPIKey, "from-process")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.APIKey)
}

func TestLoad_SelectedEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{
			name:     "json",
			file:     "environments.json",
			contents: `{"production":{"endpoint":"https://api.gethealthie.com/graphql","apiKey":"prod-key"}}`,
		},
		{
			name: "yaml",
			file: "environments.yaml",
			contents: "production:\n" +
				"  endpoint: https://api.gethealthie.com/graphql\n" +
				"  apiKey: prod-key\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.contents)
			t.Setenv(EnvSelectedEnvironment, "production")

			cfg, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, "production", cfg.Environment)
			assert.Equal(t, "https://api.gethealthie.com/graphql", cfg.Endpoint)
			assert.Equal(t, "prod-key", cfg.APIKey)
			assert.Equal(t, filepath.Join(dir, "schemas", "healthie-schema-production.graphql"), cfg.SchemaFile)
		})
	}
}

func TestLoad_EnvironmentWithoutKeyKeepsProcessKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "environments.json", `{"sandbox":{"endpoint":"https://sandbox.example/graphql"}}`)
	t.Setenv(EnvSelectedEnvironment, "sandbox")
	t.Setenv(EnvAPIKey, "process-key")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "process-key", cfg.APIKey)
}

func TestLoad_SelectionWithoutEnvironmentsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSelectedEnvironment, "production")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
}

func TestLoad_EnvironmentErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  error
	}{
		{name: "unknown environment", contents: `{"staging":{"endpoint":"https://x"}}`, wantErr: ErrUnknownEnvironment},
		{name: "missing endpoint", contents: `{"production":{"apiKey":"k"}}`, wantErr: ErrMissingEndpoint},
		{name: "malformed file", contents: `{"production": [`, wantErr: ErrInvalidEnvironments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, "environments.json", tt.contents)
			t.Setenv(EnvSelectedEnvironment, "production")

			_, err := Load(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvSchemaFile, "custom/schema.graphql")
	t.Setenv(EnvServerPath, "/opt/apollo/apollo-mcp-server")
	t.Setenv(EnvAuditDB, "audit.db")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "schema.graphql"), cfg.SchemaFile)
	assert.Equal(t, "/opt/apollo/apollo-mcp-server", cfg.ServerPath)
	assert.Equal(t, filepath.Join(dir, "audit.db"), cfg.AuditDB)
}

func TestLoad_BaseDirFromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvBaseDir, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
}

func TestServerArgs(t *testing.T) {
	cfg := &Config{
		Endpoint:   "https://staging-api.gethealthie.com/graphql",
		SchemaFile: "/srv/schemas/healthie-schema.graphql",
	}

	assert.Equal(t, []string{
		"--introspection",
		"--schema", "/srv/schemas/healthie-schema.graphql",
		"--endpoint", "https://staging-api.gethealthie.com/graphql",
	}, cfg.ServerArgs())

	cfg.APIKey = "abc123"
	assert.Equal(t, []string{
		"--introspection",
		"--schema", "/srv/schemas/healthie-schema.graphql",
		"--endpoint", "https://staging-api.gethealthie.com/graphql",
		"--header", "authorization: Basic abc123",
		"--header", "AuthorizationSource: API",
	}, cfg.ServerArgs())
}

func TestEnsureSchemaDir(t *testing.T) {
	cfg := &Config{SchemaDir: filepath.Join(t.TempDir(), "schemas")}
	require.NoError(t, cfg.EnsureSchemaDir())

	info, err := os.Stat(cfg.SchemaDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
