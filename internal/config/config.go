// Package config resolves the proxy configuration from the base directory,
// its .env file, an optional environments file and process variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults used when no environment is selected
const (
	DefaultEndpoint    = "https://staging-api.gethealthie.com/graphql"
	DefaultSchemaDir   = "./schemas"
	DefaultSchemaFile  = "./schemas/healthie-schema.graphql"
	DefaultServerPath  = "./apollo-mcp-server"
	DefaultEnvironment = "default"
)

// Process variables read by Load
const (
	EnvSelectedEnvironment = "HEALTHIE_ENV"
	EnvAPIKey              = "HEALTHIE_API_KEY"
	EnvSchemaFile          = "GQLSEARCH_SCHEMA_FILE"
	EnvServerPath          = "GQLSEARCH_SERVER_PATH"
	EnvAuditDB             = "GQLSEARCH_AUDIT_DB"
	EnvBaseDir             = "GQLSEARCH_BASE_DIR"
)

// environmentFiles are tried in order; JSON is valid YAML so one parser
// reads all of them
var environmentFiles = []string{"environments.json", "environments.yaml", "environments.yml"}

var (
	// ErrUnknownEnvironment is returned when the selected environment is not
	// defined in the environments file
	ErrUnknownEnvironment = errors.New("environment not found")
	// ErrInvalidEnvironments is returned when the environments file cannot be parsed
	ErrInvalidEnvironments = errors.New("invalid environments file")
	// ErrMissingEndpoint is returned when the selected environment has no endpoint
	ErrMissingEndpoint = errors.New("environment has no endpoint")
)

// Environment is one entry of the environments file
type Environment struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// Config is the resolved runtime configuration. Paths are absolute.
type Config struct {
	BaseDir     string
	Environment string // Selected environment name, or "default"
	Endpoint    string
	APIKey      string
	SchemaDir   string
	SchemaFile  string
	ServerPath  string
	AuditDB     string // Empty disables the audit log
}

// Load resolves the configuration for baseDir. An empty baseDir falls back
// to GQLSEARCH_BASE_DIR and then the working directory.
func Load(baseDir string) (*Config, error) {
	baseDir, err := resolveBaseDir(baseDir)
	if err != nil {
		return nil, err
	}

	// Existing process variables win over .env entries
	if err := godotenv.Load(filepath.Join(baseDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		BaseDir:     baseDir,
		Environment: DefaultEnvironment,
		Endpoint:    DefaultEndpoint,
		APIKey:      os.Getenv(EnvAPIKey),
		SchemaDir:   resolvePath(baseDir, DefaultSchemaDir),
		SchemaFile:  resolvePath(baseDir, DefaultSchemaFile),
		ServerPath:  resolvePath(baseDir, DefaultServerPath),
	}

	if selected := os.Getenv(EnvSelectedEnvironment); selected != "" {
		if err := cfg.applyEnvironment(selected); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvSchemaFile); v != "" {
		cfg.SchemaFile = resolvePath(baseDir, v)
	}
	if v := os.Getenv(EnvServerPath); v != "" {
		cfg.ServerPath = resolvePath(baseDir, v)
	}
	if v := os.Getenv(EnvAuditDB); v != "" {
		cfg.AuditDB = resolvePath(baseDir, v)
	}

	return cfg, nil
}

// applyEnvironment switches cfg to the named environment. Without an
// environments file the defaults stay in place.
func (c *Config) applyEnvironment(name string) error {
	path, ok := findEnvironmentsFile(c.BaseDir)
	if !ok {
		return nil
	}

	envs, err := LoadEnvironments(path)
	if err != nil {
		return err
	}

	env, ok := envs[name]
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownEnvironment, name, filepath.Base(path))
	}
	if env.Endpoint == "" {
		return fmt.Errorf("%w: %q", ErrMissingEndpoint, name)
	}

	c.Environment = name
	c.Endpoint = env.Endpoint
	if env.APIKey != "" {
		c.APIKey = env.APIKey
	}
	c.SchemaFile = resolvePath(c.BaseDir, fmt.Sprintf("%s/healthie-schema-%s.graphql", DefaultSchemaDir, name))
	return nil
}

// LoadEnvironments parses an environments file keyed by environment name
func LoadEnvironments(path string) (map[string]Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var envs map[string]Environment
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEnvironments, filepath.Base(path), err)
	}
	return envs, nil
}

// ServerArgs builds the argument vector for the introspection server.
// Auth headers are added only when an API key is configured.
func (c *Config) ServerArgs() []string {
	args := []string{"--introspection", "--schema", c.SchemaFile, "--endpoint", c.Endpoint}
	if c.APIKey != "" {
		args = append(args,
			"--header", "authorization: Basic "+c.APIKey,
			"--header", "AuthorizationSource: API",
		)
	}
	return args
}

// EnsureSchemaDir creates the schema directory if it does not exist
func (c *Config) EnsureSchemaDir() error {
	if err := os.MkdirAll(c.SchemaDir, 0o755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}
	return nil
}

func findEnvironmentsFile(baseDir string) (string, bool) {
	for _, name := range environmentFiles {
		path := filepath.Join(baseDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func resolveBaseDir(baseDir string) (string, error) {
	if baseDir == "" {
		baseDir = os.Getenv(EnvBaseDir)
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	return abs, nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
