package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dshills/gqlsearch-mcp/internal/cli"
	"github.com/dshills/gqlsearch-mcp/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func versionString() string {
	return fmt.Sprintf("%s (built %s, %s sqlite driver)", version, buildTime, storage.BuildMode)
}

func main() {
	// Log to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetPrefix("[gqlsearch] ")

	ctx := context.Background()
	if err := cli.NewRoot(versionString()).ExecuteContext(ctx); err != nil {
		var ee *cli.ExitError
		if errors.As(err, &ee) {
			if msg := ee.Message(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ee.Code())
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
