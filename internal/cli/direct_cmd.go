package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/supervisor"
)

func newDirectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "direct",
		Short: "Run the MCP server without the search proxy",
		Long: `Start the Apollo MCP server attached to this process's stdin and stdout.

Schema dump messages printed during the first two seconds of startup are
hidden; all other server diagnostics pass through.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.EnsureSchemaDir(); err != nil {
				return fail("%v", err)
			}
			if _, err := os.Stat(cfg.SchemaFile); err != nil {
				return fail("Schema file not found at: %s", cfg.SchemaFile)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			code, err := supervisor.Run(supervisor.Options{
				ServerPath: cfg.ServerPath,
				Args:       cfg.ServerArgs(),
				Dir:        cfg.BaseDir,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
				Signals:    sigChan,
			})
			if err != nil {
				return fail("%v", err)
			}
			log.Printf("MCP server exited with code %d", code)
			return exitCode(code)
		},
	}
}
