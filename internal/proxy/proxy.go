package proxy

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/gqlsearch-mcp/internal/mcp"
	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// serverLinePrefix marks server stdout lines demoted to diagnostics
const serverLinePrefix = "[MCP Server]: "

// readBufferSize is the chunk size for reading server stdout
const readBufferSize = 32 * 1024

// Recorder persists intercepted calls. *storage.SQLiteStorage implements it.
type Recorder interface {
	RecordInterception(ctx context.Context, in *types.Interception) error
}

// Options configures a Proxy
type Options struct {
	Reporter    mcp.Reporter // Answers search_schema calls (required)
	Output      io.Writer    // Client stdout (required)
	Diagnostics io.Writer    // Proxy stderr (required)
	Recorder    Recorder     // Optional audit log
	SessionID   string       // Tags audit rows
}

// Proxy routes traffic between a client and a running server
type Proxy struct {
	proc      Process
	reporter  mcp.Reporter
	out       *lockedWriter
	diag      *lockedWriter
	recorder  Recorder
	sessionID string
}

// New creates a proxy for an already started server process
func New(proc Process, opts Options) (*Proxy, error) {
	if proc == nil {
		return nil, errors.New("process is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if opts.Output == nil || opts.Diagnostics == nil {
		return nil, errors.New("output and diagnostics writers are required")
	}

	return &Proxy{
		proc:      proc,
		reporter:  opts.Reporter,
		out:       newLockedWriter(opts.Output),
		diag:      newLockedWriter(opts.Diagnostics),
		recorder:  opts.Recorder,
		sessionID: opts.SessionID,
	}, nil
}

// Run pumps traffic until the server exits and returns its exit code.
//
// The client pump is not waited on: client stdin may stay open after the
// server is gone. Client EOF closes server stdin.
func (p *Proxy) Run(ctx context.Context, clientIn io.Reader) (int, error) {
	go func() {
		if err := p.pumpClient(ctx, clientIn); err != nil {
			log.Printf("Client input error: %v", err)
		}
	}()

	var g errgroup.Group
	g.Go(p.pumpServerStdout)
	g.Go(p.pumpServerStderr)
	pumpErr := g.Wait()

	code, err := p.proc.Wait()
	if err != nil {
		return code, err
	}
	if pumpErr != nil {
		log.Printf("Server output error: %v", pumpErr)
	}
	return code, nil
}

// Signal relays sig to the server
func (p *Proxy) Signal(sig os.Signal) error {
	return p.proc.Signal(sig)
}

// pumpClient feeds client lines to HandleClientLine until EOF
func (p *Proxy) pumpClient(ctx context.Context, r io.Reader) error {
	defer func() {
		if err := p.proc.CloseInput(); err != nil {
			log.Printf("Failed to close server stdin: %v", err)
		}
	}()

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte("\n"))
			line = bytes.TrimSuffix(line, []byte("\r"))
			if herr := p.HandleClientLine(ctx, line); herr != nil {
				return herr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// pumpServerStdout splits server stdout into lines for HandleServerLine.
// A trailing unterminated fragment gets one final attempt at EOF. After the
// first failed write the rest of the output is read and discarded so the
// server never blocks on a full pipe.
func (p *Proxy) pumpServerStdout() error {
	var (
		splitter LineSplitter
		writeErr error
	)
	handle := func(line []byte) {
		if writeErr != nil {
			return
		}
		if err := p.HandleServerLine(line); err != nil {
			writeErr = err
			log.Printf("Client output failed, discarding server output: %v", err)
		}
	}

	buf := make([]byte, readBufferSize)
	stdout := p.proc.Stdout()

	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			for _, line := range splitter.Feed(buf[:n]) {
				handle(line)
			}
		}
		if err != nil {
			if pending := splitter.Pending(); pending > 0 {
				log.Printf("Server stdout ended with %d unterminated bytes", pending)
				handle(splitter.Remainder())
			}
			if writeErr != nil {
				return writeErr
			}
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("server stdout: %w", err)
		}
	}
}

// pumpServerStderr copies server stderr to diagnostics. When diagnostics
// fail the stream is still drained.
func (p *Proxy) pumpServerStderr() error {
	stderr := p.proc.Stderr()
	_, err := io.Copy(p.diag, stderr)
	if err == nil || errors.Is(err, os.ErrClosed) {
		return nil
	}
	_, _ = io.Copy(io.Discard, stderr)
	return fmt.Errorf("server stderr: %w", err)
}

// HandleClientLine routes one client line. search_schema calls and
// introspect calls on Query or Mutation are answered on client stdout;
// everything else goes to the server.
func (p *Proxy) HandleClientLine(ctx context.Context, line []byte) error {
	frame, err := mcp.ParseFrame(line)
	if err != nil {
		if errors.Is(err, mcp.ErrInvalidJSON) {
			return p.forward(line)
		}
		// valid JSON that is not an object
		return p.forward(mcp.Compact(line))
	}

	decision := mcp.Classify(frame)
	switch decision.Action {
	case mcp.ActionSearch:
		return p.answerSearch(ctx, frame, decision)
	case mcp.ActionBlock:
		return p.answerBlocked(ctx, frame, decision)
	default:
		return p.forward(mcp.Compact(line))
	}
}

// HandleServerLine routes one server stdout line. Blank lines are dropped
// and lines that are not protocol frames go to diagnostics.
func (p *Proxy) HandleServerLine(line []byte) error {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	frame, err := mcp.ParseFrame(line)
	if err != nil || !frame.IsProtocol() {
		return p.diag.writeLine([]byte(serverLinePrefix), line)
	}

	out, rewritten, err := mcp.RewriteToolList(line)
	if err != nil {
		log.Printf("Failed to rewrite tool list: %v", err)
		rewritten = false
	}
	if !rewritten {
		out = mcp.Compact(line)
	}
	return p.out.writeLine(out)
}

// forward writes line to server stdin. Only the client pump calls it.
func (p *Proxy) forward(line []byte) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := p.proc.Write(buf); err != nil {
		return fmt.Errorf("failed to forward to server: %w", err)
	}
	return nil
}

func (p *Proxy) answerSearch(ctx context.Context, frame *mcp.Frame, decision mcp.Decision) error {
	start := time.Now()

	var (
		response []byte
		outcome  = "ok"
		query    string
	)

	args, err := mcp.DecodeArguments(decision.Arguments)
	if err == nil {
		query, _ = args["query"].(string)
		var report string
		if report, err = mcp.RunSearch(ctx, p.reporter, args); err == nil {
			response, err = mcp.NewTextResultFrame(frame.ID(), report)
			if err != nil {
				return fmt.Errorf("failed to encode search result: %w", err)
			}
		}
	}
	if err != nil {
		code, message := mcp.ErrorResponse(err)
		outcome = message
		if response, err = mcp.NewErrorFrame(frame.ID(), code, message); err != nil {
			return fmt.Errorf("failed to encode search error: %w", err)
		}
	}

	p.record(ctx, &types.Interception{
		RequestID: string(frame.ID()),
		Action:    types.ActionSearch,
		Tool:      decision.Tool,
		Detail:    query,
		Outcome:   outcome,
		Duration:  time.Since(start),
	})
	return p.out.writeLine(response)
}

func (p *Proxy) answerBlocked(ctx context.Context, frame *mcp.Frame, decision mcp.Decision) error {
	message := mcp.BlockedIntrospectionMessage(decision.BlockedType)
	response, err := mcp.NewErrorFrame(frame.ID(), mcp.ErrorCodeInternalError, message)
	if err != nil {
		return fmt.Errorf("failed to encode blocked response: %w", err)
	}

	p.record(ctx, &types.Interception{
		RequestID: string(frame.ID()),
		Action:    types.ActionBlocked,
		Tool:      decision.Tool,
		Detail:    decision.BlockedType,
		Outcome:   message,
	})
	return p.out.writeLine(response)
}

// record stores an interception. Failures are logged and otherwise ignored.
func (p *Proxy) record(ctx context.Context, in *types.Interception) {
	if p.recorder == nil {
		return
	}
	in.SessionID = p.sessionID
	in.CreatedAt = time.Now()
	if err := p.recorder.RecordInterception(ctx, in); err != nil {
		log.Printf("Failed to record interception: %v", err)
	}
}
