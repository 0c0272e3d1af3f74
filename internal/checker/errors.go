package checker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/woozymasta/mcwho/internal/game"
)

// ErrNoDefaultConfigured is returned by Check when no address was given and
// the unit has no stored default. No query is attempted.
var ErrNoDefaultConfigured = errors.New("no default server configured")

// FailureKind classifies a failed status query.
type FailureKind int

// Query failure kinds. The set is closed.
const (
	InvalidAddress FailureKind = iota + 1
	Offline
	ConnectionRefused
	Unknown
)

func (k FailureKind) String() string {
	switch k {
	case InvalidAddress:
		return "invalid_address"
	case Offline:
		return "offline"
	case ConnectionRefused:
		return "connection_refused"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// QueryError is a classified status query failure.
type QueryError struct {
	Err     error
	Address string
	Kind    FailureKind
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %s: %v", e.Address, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, if it carries one.
func KindOf(err error) (FailureKind, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind, true
	}

	return 0, false
}

// classify maps a low-level lookup or query error to a failure kind.
func classify(err error) FailureKind {
	var (
		dnsErr *net.DNSError
		netErr net.Error
	)

	switch {
	case errors.Is(err, game.ErrInvalidAddress):
		return InvalidAddress
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return Offline
		}
		return InvalidAddress
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return Offline
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnectionRefused
	case errors.As(err, &netErr) && netErr.Timeout():
		return Offline
	}

	return Unknown
}
