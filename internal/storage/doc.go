// Package storage provides the SQLite audit log of calls the proxy answered
// itself.
//
// Every search_schema call and every rejected introspect call is recorded
// as an interception row tagged with the proxy session that served it.
//
// # Database Schema
//
// Tables:
//   - schema_version: applied migrations (semantic versions)
//   - interceptions: one row per locally answered call
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("audit.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.RecordInterception(ctx, &types.Interception{
//	    SessionID: sessionID,
//	    RequestID: "7",
//	    Action:    types.ActionSearch,
//	    Tool:      "search_schema",
//	    Detail:    "patient",
//	})
//
//	recent, err := db.ListInterceptions(ctx, 20)
//	counts, err := db.CountByAction(ctx)
//
// # Drivers
//
// The driver is selected at build time. The default build uses the pure Go
// modernc.org/sqlite driver; building with the sqlite_cgo tag switches to
// github.com/mattn/go-sqlite3.
package storage
