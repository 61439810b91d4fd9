package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/config"
	"github.com/dshills/gqlsearch-mcp/internal/schema"
	"github.com/dshills/gqlsearch-mcp/internal/searcher"
	"github.com/dshills/gqlsearch-mcp/internal/storage"
)

// NewRoot builds the gqlsearch command tree. Without a subcommand it runs
// the intercepting proxy.
func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gqlsearch",
		Short:         "gqlsearch: schema search proxy for the Apollo MCP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runProxy,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("gqlsearch {{.Version}}\n")

	cmd.PersistentFlags().String("base-dir", "", "Directory holding .env, environments.json, schemas/ and the server binary (env GQLSEARCH_BASE_DIR, default working directory)")
	cmd.PersistentFlags().String("audit-db", "", "SQLite database recording intercepted calls (env GQLSEARCH_AUDIT_DB)")

	cmd.AddCommand(newProxyCmd())
	cmd.AddCommand(newDirectCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStandaloneCmd())
	cmd.AddCommand(newAuditCmd())

	return cmd
}

// loadConfig resolves the configuration, applying persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	baseDir, _ := cmd.Flags().GetString("base-dir")
	auditDB, _ := cmd.Flags().GetString("audit-db")

	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, fail("Configuration error: %v", err)
	}
	if auditDB != "" {
		cfg.AuditDB = auditDB
	}
	return cfg, nil
}

// loadSearcher reads the configured schema into a searcher
func loadSearcher(cfg *config.Config) (*searcher.Searcher, error) {
	doc, err := schema.Load(cfg.SchemaFile)
	if err != nil {
		return nil, fail("Failed to load schema: %v", err)
	}
	log.Printf("Loaded schema %s (%d lines)", doc.Path(), doc.Len())
	return searcher.NewSearcher(doc), nil
}

// openAudit opens the audit log when one is configured. Failures disable
// auditing and are only logged.
func openAudit(cfg *config.Config) *storage.SQLiteStorage {
	if cfg.AuditDB == "" {
		return nil
	}
	db, err := storage.NewSQLiteStorage(cfg.AuditDB)
	if err != nil {
		log.Printf("Audit log disabled: %v", err)
		return nil
	}
	log.Printf("Recording interceptions to %s (%s driver)", cfg.AuditDB, storage.BuildMode)
	return db
}
