package supervisor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/dshills/gqlsearch-mcp/internal/proxy"
)

// Options configures a direct server run
type Options struct {
	ServerPath string
	Args       []string
	Dir        string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Signals are relayed to the server until it exits
	Signals <-chan os.Signal
}

// Run starts the server, relays signals and filtered stderr, and returns
// the server's exit code once it exits
func Run(opts Options) (int, error) {
	if _, err := os.Stat(opts.ServerPath); err != nil {
		return 1, fmt.Errorf("%w: %s", proxy.ErrServerNotFound, opts.ServerPath)
	}

	cmd := exec.Command(opts.ServerPath, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 1, fmt.Errorf("failed to open server stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("failed to start MCP server: %w", err)
	}
	log.Printf("Started MCP server (pid %d)", cmd.Process.Pid)

	done := make(chan struct{})
	defer close(done)
	go relaySignals(cmd.Process, opts.Signals, done)

	filter := NewStartupFilter(opts.Stderr, StartupWindow)
	if _, err := io.Copy(filter, stderr); err != nil {
		log.Printf("Server stderr error: %v", err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return proxy.ExitCode(exitErr.ExitCode()), nil
		}
		return 1, fmt.Errorf("failed waiting for MCP server: %w", err)
	}
	return 0, nil
}

func relaySignals(p *os.Process, signals <-chan os.Signal, done <-chan struct{}) {
	if signals == nil {
		return
	}
	for {
		select {
		case sig := <-signals:
			log.Printf("Relaying %v to MCP server", sig)
			if err := p.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
				log.Printf("Failed to signal MCP server: %v", err)
			}
		case <-done:
			return
		}
	}
}
