package types

import "time"

// Interception action names as stored in the audit log
const (
	ActionSearch  = "search"
	ActionBlocked = "blocked"
)

// Interception is a tools/call the proxy answered instead of the server
type Interception struct {
	ID        int64
	SessionID string        // Proxy run that served the call
	RequestID string        // Raw JSON-RPC id of the request
	Action    string        // ActionSearch or ActionBlocked
	Tool      string        // Tool name from the request
	Detail    string        // Search query or blocked type name
	Outcome   string        // "ok" or the error message sent to the client
	Duration  time.Duration // Time spent answering the call
	CreatedAt time.Time
}

// Validate checks if the interception record is valid
func (i *Interception) Validate() error {
	if i.Action != ActionSearch && i.Action != ActionBlocked {
		return ErrInvalidAction
	}
	if i.SessionID == "" {
		return ErrMissingSession
	}
	return nil
}
