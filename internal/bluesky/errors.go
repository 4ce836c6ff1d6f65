package bluesky

import "fmt"

// TransportError covers everything that went wrong before the server
// could give a meaningful answer: network failure, timeout, or a
// non-2xx reply without a parseable error body. A transport failure
// says nothing about the session's validity, so callers keep their
// stored session.
type TransportError struct {
	Op  string // the xrpc call being made, ex: "createSession"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a well-formed rejection from the server: the reply
// parsed as JSON and carried an error field. For session calls this
// means the credentials or token are bad and the session should be
// discarded.
type ProtocolError struct {
	Op      string
	Status  int    // HTTP status code
	Code    string // server error identifier, ex: "ExpiredToken"
	Message string // human-readable server message
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server rejected request: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: server rejected request: %s", e.Op, e.Code)
}

// AuthError means both the refresh and the fresh login failed. There
// is no session to post with; the action is over.
type AuthError struct {
	RefreshErr error // nil when there was no session to refresh
	LoginErr   error
}

func (e *AuthError) Error() string {
	if e.RefreshErr != nil {
		return fmt.Sprintf("authentication failed: refresh: %v; login: %v", e.RefreshErr, e.LoginErr)
	}
	return fmt.Sprintf("authentication failed: login: %v", e.LoginErr)
}

func (e *AuthError) Unwrap() error { return e.LoginErr }
