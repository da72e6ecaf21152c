package directory

import (
	"context"
	"errors"
	"fmt"
)

// Client verifies credentials and fetches profile attributes from the
// directory. Implementations open one connection per call and make a single
// attempt; retrying is the caller's decision.
type Client interface {
	BindAndFetch(ctx context.Context, username, password string) (*Record, error)
}

// ErrorKind classifies directory failures. Only the kind crosses into logs;
// none of it crosses the trust boundary to the HTTP client.
type ErrorKind int

const (
	KindConnection ErrorKind = iota
	KindTLS
	KindAuthentication
	KindIdentityNotFound
	KindSearch
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection_failed"
	case KindTLS:
		return "tls_failed"
	case KindAuthentication:
		return "authentication_failed"
	case KindIdentityNotFound:
		return "identity_not_found"
	case KindSearch:
		return "search_failed"
	default:
		return "unknown"
	}
}

// Error wraps a directory failure with its classification.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("directory %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a directory failure classification.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Classify returns the error kind, or KindConnection for errors that did not
// originate in this package (dropped connections, context deadlines).
func Classify(err error) ErrorKind {
	var dirErr *Error
	if errors.As(err, &dirErr) {
		return dirErr.Kind
	}
	return KindConnection
}
