package cbor

import (
	"errors"

	rt "github.com/cbordet/cbor/runtime"
)

// Sentinel errors, one per named kind in §7. Decode wraps these in a
// *runtime.PositionError carrying the byte offset at which the
// condition was detected (§6.5); Encode returns them bare, since
// offsets are decode-only.
var (
	// Structural
	ErrUnexpectedEOF               = errors.New("cbor: unexpected end of input")
	ErrTrailingBytes               = errors.New("cbor: trailing bytes after top-level item")
	ErrReservedAdditionalInfo      = errors.New("cbor: reserved additional information value")
	ErrIndefiniteNotAllowed        = errors.New("cbor: indefinite-length item not allowed")
	ErrIndefiniteChunkTypeMismatch = errors.New("cbor: indefinite-length chunk has mismatched major type")
	ErrStrayBreak                  = errors.New("cbor: break outside indefinite-length item")
	ErrMaxDepthExceeded            = errors.New("cbor: maximum nesting depth exceeded")

	// Content
	ErrInvalidUTF8           = errors.New("cbor: invalid UTF-8 in text string")
	ErrUnassignedSimpleValue = errors.New("cbor: unassigned simple value")
	ErrUnknownTag            = errors.New("cbor: no decoder registered for tag")
	ErrNonStringMapKey       = errors.New("cbor: map key does not coerce to a string")
	ErrDuplicateMapKey       = errors.New("cbor: duplicate map key")

	// Strictness
	ErrNonCanonicalEncoding = errors.New("cbor: non-canonical encoding")
	ErrMapKeysOutOfOrder    = errors.New("cbor: map keys not in canonical order")
	ErrIntOutOfRange        = errors.New("cbor: integer outside allowed range")
	ErrUndefinedNotAllowed  = errors.New("cbor: undefined value not allowed")

	// Encoder
	ErrCircularReference = errors.New("cbor: circular reference in value graph")
	ErrUnsupportedType   = errors.New("cbor: unsupported value")
	ErrBigIntRequiresTag = errors.New("cbor: big integer outside [-2^64, 2^64-1] requires a registered type encoder")
)

// atOffset wraps err as a decode-time error carrying kind and offset,
// matching §6.5's (kind, byte-offset) error surface requirement.
func atOffset(kind rt.Kind, offset int, err error) error {
	return rt.AtOffset(kind, int64(offset), err)
}
