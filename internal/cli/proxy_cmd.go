package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dshills/gqlsearch-mcp/internal/proxy"
)

func newProxyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proxy",
		Short: "Run the MCP server behind the schema search proxy (default)",
		Long: `Start the Apollo MCP server and sit between it and the client.

The proxy adds a search_schema tool, answers it from the local schema file,
and rejects introspect calls on the Query and Mutation root types. Other
traffic passes through unchanged.`,
		Args: cobra.NoArgs,
		RunE: runProxy,
	}
}

type runResult struct {
	code int
	err  error
}

func runProxy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("Environment: %s, endpoint: %s", cfg.Environment, cfg.Endpoint)

	srch, err := loadSearcher(cfg)
	if err != nil {
		return err
	}

	opts := proxy.Options{
		Reporter:    srch,
		Output:      cmd.OutOrStdout(),
		Diagnostics: cmd.ErrOrStderr(),
		SessionID:   uuid.NewString(),
	}
	if db := openAudit(cfg); db != nil {
		defer func() { _ = db.Close() }()
		opts.Recorder = db
	}

	proc, err := proxy.StartProcess(cfg.ServerPath, cfg.ServerArgs(), cfg.BaseDir)
	if err != nil {
		return fail("%v", err)
	}
	log.Printf("Started MCP server %s (pid %d)", cfg.ServerPath, proc.Pid())

	p, err := proxy.New(proc, opts)
	if err != nil {
		return fail("%v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan runResult, 1)
	go func() {
		code, err := p.Run(cmd.Context(), cmd.InOrStdin())
		done <- runResult{code: code, err: err}
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, stopping MCP server", sig)
		if err := p.Signal(sig); err != nil {
			log.Printf("Failed to signal MCP server: %v", err)
		}
		return nil
	case r := <-done:
		if r.err != nil {
			return fail("MCP server failed: %v", r.err)
		}
		log.Printf("MCP server exited with code %d", r.code)
		return exitCode(r.code)
	}
}
