// Package qerr defines the error taxonomy the engine surfaces at its
// internal package boundaries (kernel, decoder, session). Kernel-level
// contract violations are programmer errors and are raised by panicking
// with one of these wrapped in a kernel.Fault; the session layer recovers
// them and converts them to the sentinel return value described in the
// external interface.
package qerr

import "errors"

// Kind distinguishes the categories of failure the engine reports.
type Kind int

const (
	// InvalidArgument covers null/zero-length inputs, shape or dtype
	// mismatches, non-contiguous data where contiguity is required,
	// ntoken exceeding maxseq, and append-only calls without a cache.
	InvalidArgument Kind = iota
	// InvalidMeta covers construction-time structural violations of Meta.
	InvalidMeta
	// InvalidIndex covers embedding indices or positions out of range.
	InvalidIndex
	// AllocationFailure covers a transient buffer that could not be acquired.
	AllocationFailure
	// UnsupportedDType covers an element type outside {f32, fp16, bf16}.
	UnsupportedDType
	// UnsupportedDevice covers a non-CPU device request with no backend compiled in.
	UnsupportedDevice
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidMeta:
		return "InvalidMeta"
	case InvalidIndex:
		return "InvalidIndex"
	case AllocationFailure:
		return "AllocationFailure"
	case UnsupportedDType:
		return "UnsupportedDType"
	case UnsupportedDevice:
		return "UnsupportedDevice"
	default:
		return "Unknown"
	}
}

// Error is a taxonomy-tagged error. Kind is compared with errors.Is against
// the sentinel values below; Msg carries the human-readable detail.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is makes errors.Is(err, ErrInvalidArgument) etc. work: two *Error values
// match if they share a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind carrying msg verbatim; msg is
// not treated as a format string.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Sentinel values for errors.Is comparisons, one per Kind.
var (
	ErrInvalidArgument   = &Error{Kind: InvalidArgument}
	ErrInvalidMeta       = &Error{Kind: InvalidMeta}
	ErrInvalidIndex      = &Error{Kind: InvalidIndex}
	ErrAllocationFailure = &Error{Kind: AllocationFailure}
	ErrUnsupportedDType  = &Error{Kind: UnsupportedDType}
	ErrUnsupportedDevice = &Error{Kind: UnsupportedDevice}
)

// KindOf extracts the Kind from err if it is (or wraps) a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
