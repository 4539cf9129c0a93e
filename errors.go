package ctdiff

import (
	"fmt"

	"github.com/tanctl/ctdiff/security"
)

// ErrorKind is the stable identifier taxonomy of §7. The core
// constructs and surfaces Security, Io, and ResourceLimit; Format is
// reserved for formatters (out of scope here) to report their own
// failures through the same shape.
type ErrorKind int

const (
	Security ErrorKind = iota
	Io
	ResourceLimit
	Format
)

func (k ErrorKind) String() string {
	switch k {
	case Security:
		return "Security"
	case Io:
		return "Io"
	case ResourceLimit:
		return "ResourceLimit"
	case Format:
		return "Format"
	default:
		return "Unknown"
	}
}

// Error is the library's error type. Message never embeds
// content-derived data (§7) — only lengths and configured policy
// values, which are public.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ctdiff: %s: %s", e.Kind, e.Message)
}

func securityErrorf(format string, args ...any) *Error {
	return &Error{Kind: Security, Message: fmt.Sprintf(format, args...)}
}

func ioErrorf(format string, args ...any) *Error {
	return &Error{Kind: Io, Message: fmt.Sprintf(format, args...)}
}

func resourceLimitErrorf(format string, args ...any) *Error {
	return &Error{Kind: ResourceLimit, Message: fmt.Sprintf(format, args...)}
}

// wrapEngineErr adapts an error surfaced by security/engine into the
// stable ctdiff taxonomy. A *security.Error becomes a Security-kind
// ctdiff.Error; anything else (there is currently nothing else) is
// wrapped as ResourceLimit, since the only other failure mode the
// engine can report is a matrix allocation it refuses to attempt.
func wrapEngineErr(err error) error {
	if err == nil {
		return nil
	}
	if secErr, ok := err.(*security.Error); ok {
		return &Error{Kind: Security, Message: secErr.Message}
	}
	return resourceLimitErrorf("%s", err.Error())
}
