package geom

import "fmt"

// Kind classifies a recoverable geometry failure.
type Kind int

const (
	KindCoincidentPoints Kind = iota + 1
	KindCollinearPoints
	KindZeroSpan
	KindNoSupportingPlane
	KindNotSupported
)

func (k Kind) String() string {
	switch k {
	case KindCoincidentPoints:
		return "coincident points"
	case KindCollinearPoints:
		return "collinear points"
	case KindZeroSpan:
		return "zero parameter span"
	case KindNoSupportingPlane:
		return "no supporting plane"
	case KindNotSupported:
		return "not supported"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a degenerate-geometry error. Errors of the same Kind match each
// other under errors.Is, so callers can test against the sentinels below.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf returns an *Error of kind k raised by op.
func Errorf(k Kind, op, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Detail: fmt.Sprintf(format, args...)}
}

var (
	ErrCoincidentPoints  = &Error{Kind: KindCoincidentPoints}
	ErrCollinearPoints   = &Error{Kind: KindCollinearPoints}
	ErrZeroSpan          = &Error{Kind: KindZeroSpan}
	ErrNoSupportingPlane = &Error{Kind: KindNoSupportingPlane}
	ErrNotSupported      = &Error{Kind: KindNotSupported}
)
