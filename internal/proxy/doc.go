// Package proxy sits between an MCP client and the GraphQL introspection
// server, rewriting and answering traffic on the newline-delimited JSON-RPC
// transport.
//
// Three goroutines move data:
//   - client stdin to server stdin, answering search_schema calls and
//     rejecting introspect calls on the root operation types locally
//   - server stdout to client stdout, demoting non-protocol lines to
//     diagnostics and augmenting tools/list responses
//   - server stderr to diagnostics, byte for byte
//
// # Usage
//
//	proc, err := proxy.StartProcess(cfg.ServerPath, cfg.ServerArgs(), cfg.BaseDir)
//	if err != nil {
//	    return err
//	}
//
//	p, err := proxy.New(proc, proxy.Options{
//	    Reporter:    srch,
//	    Output:      os.Stdout,
//	    Diagnostics: os.Stderr,
//	})
//	if err != nil {
//	    return err
//	}
//
//	code, err := p.Run(ctx, os.Stdin)
package proxy
