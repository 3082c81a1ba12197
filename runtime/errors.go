package cbor

import (
	"errors"
	"reflect"
	"strconv"
)

const resumableDefault = false

var (
	// ErrShortBytes is returned when the
	// slice being decoded is too short to
	// contain the contents of the message
	ErrShortBytes error = errShort{}

	// ErrMaxDepthExceeded is returned when skip recursion depth exceeds limit
	ErrMaxDepthExceeded error = errors.New("cbor: max depth exceeded")

	// ErrNotNil is returned when expecting nil
	ErrNotNil error = errors.New("cbor: not nil")

	// ErrInvalidUTF8 is returned when a text string contains invalid UTF-8
	ErrInvalidUTF8 error = errors.New("cbor: invalid UTF-8 in text string")

	// ErrDuplicateMapKey is returned when a map contains duplicate keys where
	// duplicates are not allowed (e.g., deterministic/strict decoding).
	ErrDuplicateMapKey error = errors.New("cbor: duplicate map key")
)

// Error is the interface satisfied
// by all of the errors that originate
// from this package.
type Error interface {
	error

	// Resumable returns whether
	// or not the error means that
	// the stream of data is malformed
	// and the information is unrecoverable.
	Resumable() bool
}

// Resumable returns whether or not the error means that the stream of data is
// malformed and the information is unrecoverable.
func Resumable(e error) bool {
	if e, ok := e.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

type errShort struct{}

func (e errShort) Error() string   { return "cbor: too few bytes left to read object" }
func (e errShort) Resumable() bool { return false }

// ArrayError is an error returned
// when decoding a fix-sized array
// of the wrong size
type ArrayError struct {
	Wanted uint32
	Got    uint32
}

// Error implements the error interface
func (a ArrayError) Error() string {
	return "cbor: wanted array of size " + strconv.Itoa(int(a.Wanted)) + "; got " + strconv.Itoa(int(a.Got))
}

// Resumable is always 'true' for ArrayErrors
func (a ArrayError) Resumable() bool { return true }

// IntOverflow is returned when a call
// would downcast an integer to a type
// with too few bits to hold its value.
type IntOverflow struct {
	Value         int64 // the value of the integer
	FailedBitsize int   // the bit size that the int64 could not fit into
}

// Error implements the error interface
func (i IntOverflow) Error() string {
	return "cbor: " + strconv.FormatInt(i.Value, 10) + " overflows int" + strconv.Itoa(i.FailedBitsize)
}

// Resumable is always 'true' for overflows
func (i IntOverflow) Resumable() bool { return true }

// UintOverflow is returned when a call
// would downcast an unsigned integer to a type
// with too few bits to hold its value
type UintOverflow struct {
	Value         uint64 // value of the uint
	FailedBitsize int    // the bit size that couldn't fit the value
}

// Error implements the error interface
func (u UintOverflow) Error() string {
	return "cbor: " + strconv.FormatUint(u.Value, 10) + " overflows uint" + strconv.Itoa(u.FailedBitsize)
}

// Resumable is always 'true' for overflows
func (u UintOverflow) Resumable() bool { return true }

// badPrefix reports a major type mismatch against the expected one.
func badPrefix(gotMajor uint8, wantMajor uint8) error {
	return InvalidPrefixError{Want: wantMajor, Got: gotMajor}
}

// InvalidPrefixError is returned when a bad encoding
// uses a major type that is not expected.
// This kind of error is unrecoverable.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

// Error implements the error interface
func (i InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(i.Want)) + " but got " + strconv.Itoa(int(i.Got))
}

// Resumable returns 'false' for InvalidPrefixErrors
func (i InvalidPrefixError) Resumable() bool { return false }

// ErrUnsupportedType is returned when a bad argument is supplied to
// a function that accepts arbitrary values.
type ErrUnsupportedType struct {
	T reflect.Type
}

// Error implements error
func (e *ErrUnsupportedType) Error() string {
	return "cbor: type " + strconv.Quote(e.T.String()) + " not supported"
}

// Resumable returns 'true' for ErrUnsupportedType
func (e *ErrUnsupportedType) Resumable() bool { return true }

// Kind classifies a decode/encode failure independent of its message,
// so callers can branch on failure category without string matching.
type Kind uint8

const (
	KindUnspecified Kind = iota
	KindStructural       // truncated input, bad major type, depth exceeded
	KindContent          // well-formed but semantically invalid (including bad UTF-8)
	KindStrictness       // well-formed but rejected by strict/canonical mode
	KindEncoder          // no registered encoder for a value, or cycle detected
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindContent:
		return "content"
	case KindStrictness:
		return "strictness"
	case KindEncoder:
		return "encoder"
	default:
		return "unspecified"
	}
}

// PositionError reports a failure at a specific byte offset into the
// input or output being processed, tagged with a Kind so callers can
// distinguish malformed input from policy rejections without
// inspecting the message text.
type PositionError struct {
	Kind   Kind
	Offset int64
	Err    error
}

func (e *PositionError) Error() string {
	return "cbor: " + e.Kind.String() + " error at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *PositionError) Unwrap() error { return e.Err }

func (e *PositionError) Resumable() bool {
	if r, ok := e.Err.(Error); ok {
		return r.Resumable()
	}
	return resumableDefault
}

// AtOffset wraps err with a Kind and byte offset, unless err is nil.
func AtOffset(kind Kind, offset int64, err error) error {
	if err == nil {
		return nil
	}
	return &PositionError{Kind: kind, Offset: offset, Err: err}
}
