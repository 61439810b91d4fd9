package proxy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// ErrServerNotFound is returned when the server binary does not exist
var ErrServerNotFound = errors.New("MCP server binary not found")

// Process is a running server with piped standard streams
type Process interface {
	io.Writer // server stdin

	// CloseInput closes server stdin
	CloseInput() error
	Stdout() io.Reader
	Stderr() io.Reader

	// Wait blocks until the server exits and returns its exit code.
	// A server terminated by a signal reports 0.
	Wait() (int, error)
	Signal(sig os.Signal) error
}

// ExecProcess is a Process backed by os/exec
type ExecProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// StartProcess starts the server binary at path with args, running in dir
func StartProcess(path string, args []string, dir string) (*ExecProcess, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrServerNotFound, path)
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open server stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open server stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open server stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start MCP server: %w", err)
	}

	return &ExecProcess{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// Write sends p to server stdin
func (e *ExecProcess) Write(p []byte) (int, error) {
	return e.stdin.Write(p)
}

// CloseInput closes server stdin. It is safe to call more than once.
func (e *ExecProcess) CloseInput() error {
	e.closeOnce.Do(func() {
		e.closeErr = e.stdin.Close()
	})
	return e.closeErr
}

// Stdout returns the server's standard output
func (e *ExecProcess) Stdout() io.Reader {
	return e.stdout
}

// Stderr returns the server's standard error
func (e *ExecProcess) Stderr() io.Reader {
	return e.stderr
}

// Wait waits for the server to exit. Both output streams must be drained first.
func (e *ExecProcess) Wait() (int, error) {
	err := e.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitCode(exitErr.ExitCode()), nil
	}
	return 1, fmt.Errorf("failed waiting for MCP server: %w", err)
}

// Signal delivers sig to the server
func (e *ExecProcess) Signal(sig os.Signal) error {
	if e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Pid returns the server's process id
func (e *ExecProcess) Pid() int {
	if e.cmd.Process == nil {
		return 0
	}
	return e.cmd.Process.Pid
}

// ExitCode normalizes a raw exit status. Signal terminations (-1) map to 0.
func ExitCode(code int) int {
	if code < 0 {
		return 0
	}
	return code
}
