package cli

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/mcp"
)

func newStandaloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standalone",
		Short: "Serve only search_schema over stdio, without the Apollo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			srch, err := loadSearcher(cfg)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(srch)
			if err != nil {
				return fail("Failed to create MCP server: %v", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Println("MCP server ready, listening on stdio...")
			if err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
				return fail("Server error: %v", err)
			}
			log.Println("Server stopped")
			return nil
		},
	}
}
