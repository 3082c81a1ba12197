package cbor

import (
	"math/big"

	rt "github.com/cbordet/cbor/runtime"
)

// DecodeOption configures a Decoder (§4.5's options table).
type DecodeOption func(*Decoder)

// WithAllowIndefinite controls whether indefinite-length items and
// break markers are accepted. Default true.
func WithAllowIndefinite(allow bool) DecodeOption {
	return func(d *Decoder) { d.allowIndefinite = allow }
}

// WithAllowUndefined controls whether major 7 minor 23 (undefined) is
// accepted. Default true.
func WithAllowUndefined(allow bool) DecodeOption {
	return func(d *Decoder) { d.allowUndefined = allow }
}

// WithAllowBigInt controls whether integers outside the native signed
// 64-bit range are accepted rather than rejected: unsigned ones above
// math.MaxInt64 decode as KindUint64, negative ones below math.MinInt64
// as KindBigInt. Default true.
func WithAllowBigInt(allow bool) DecodeOption {
	return func(d *Decoder) { d.allowBigInt = allow }
}

// WithStrict enables canonical-encoding enforcement: non-minimal
// integer/length/float widths and out-of-order map keys fail instead
// of being accepted. Default false.
func WithStrict(strict bool) DecodeOption {
	return func(d *Decoder) { d.strict = strict }
}

// WithUseMaps controls whether map keys may be any supported Value
// kind (true) or must decode to KindString (false, the default).
func WithUseMaps(use bool) DecodeOption {
	return func(d *Decoder) { d.useMaps = use }
}

// WithTagSet installs the table of tag decoders consulted for major-6
// items. A nil or empty TagSet makes every tag fail with ErrUnknownTag.
func WithTagSet(tags *TagSet) DecodeOption {
	return func(d *Decoder) { d.tags = tags }
}

// WithRejectDuplicateMapKeys controls whether repeated logical keys
// within one map fail decoding. Default true.
func WithRejectDuplicateMapKeys(reject bool) DecodeOption {
	return func(d *Decoder) { d.rejectDuplicateMapKeys = reject }
}

// WithDecodeMaxDepth overrides the default maximum nesting depth (§5).
func WithDecodeMaxDepth(depth int) DecodeOption {
	return func(d *Decoder) { d.maxDepth = depth }
}

// WithDecodeKeyOrder selects the comparator used for the in-strict-mode
// map-key-order check (§4.6).
func WithDecodeKeyOrder(order KeyOrder) DecodeOption {
	return func(d *Decoder) { d.keyOrder = order }
}

// Decoder holds the configuration for one family of Decode calls. The
// zero value is not usable; construct with NewDecoder.
type Decoder struct {
	allowIndefinite        bool
	allowUndefined         bool
	allowBigInt            bool
	strict                 bool
	useMaps                bool
	tags                   *TagSet
	rejectDuplicateMapKeys bool
	maxDepth               int
	keyOrder               KeyOrder
}

// NewDecoder builds a Decoder with the given options applied over the
// §4.5 defaults.
func NewDecoder(opts ...DecodeOption) *Decoder {
	d := &Decoder{
		allowIndefinite:        true,
		allowUndefined:         true,
		allowBigInt:            true,
		rejectDuplicateMapKeys: true,
		maxDepth:               64,
		keyOrder:               KeyOrderLengthFirst,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reconstructs the single top-level Value encoded in b under
// d's options, failing with ErrTrailingBytes if bytes remain after it.
func (d *Decoder) Decode(b []byte) (Value, error) {
	st := &decodeState{dec: d, orig: b}
	v, rest, err := st.decodeValue(b, 0)
	if err != nil {
		return Value{}, err
	}
	if len(rest) > 0 {
		return Value{}, st.wrap(rest, ErrTrailingBytes)
	}
	return v, nil
}

// Decode is the package-level convenience form of (*Decoder).Decode.
func Decode(b []byte, opts ...DecodeOption) (Value, error) {
	return NewDecoder(opts...).Decode(b)
}

type decodeState struct {
	dec  *Decoder
	orig []byte
}

// wrap attaches the byte offset at which the condition was detected
// (the position within the original buffer that at corresponds to)
// plus its error Kind, per §6.5.
func (st *decodeState) wrap(at []byte, err error) error {
	offset := len(st.orig) - len(at)
	return atOffset(errKind(err), offset, err)
}

func errKind(err error) rt.Kind {
	switch err {
	case ErrUnexpectedEOF, ErrTrailingBytes, ErrReservedAdditionalInfo,
		ErrIndefiniteNotAllowed, ErrIndefiniteChunkTypeMismatch,
		ErrStrayBreak, ErrMaxDepthExceeded:
		return rt.KindStructural
	case ErrInvalidUTF8, ErrUnassignedSimpleValue, ErrUnknownTag,
		ErrNonStringMapKey, ErrDuplicateMapKey:
		return rt.KindContent
	case ErrNonCanonicalEncoding, ErrMapKeysOutOfOrder, ErrIntOutOfRange,
		ErrUndefinedNotAllowed:
		return rt.KindStrictness
	default:
		return rt.KindUnspecified
	}
}

func (st *decodeState) opts() tokenizeOpts {
	return tokenizeOpts{
		allowIndefinite: st.dec.allowIndefinite,
		allowUndefined:  st.dec.allowUndefined,
		strict:          st.dec.strict,
	}
}

func (st *decodeState) decodeValue(b []byte, depth int) (Value, []byte, error) {
	if depth > st.dec.maxDepth {
		return Value{}, b, st.wrap(b, ErrMaxDepthExceeded)
	}
	if len(b) == 0 {
		return Value{}, b, st.wrap(b, ErrUnexpectedEOF)
	}

	lead := b[0]
	tok, rest, err := bytesToToken(b, st.opts())
	if err != nil {
		return Value{}, b, st.wrap(b, err)
	}

	switch tok.Type {
	case TokUint:
		if tok.Uint <= 1<<63-1 {
			return Int(int64(tok.Uint)), rest, nil
		}
		if !st.dec.allowBigInt {
			return Value{}, b, st.wrap(b, ErrIntOutOfRange)
		}
		return Uint(tok.Uint), rest, nil

	case TokNegInt:
		if tok.Uint <= 1<<63-1 {
			return Int(-1 - int64(tok.Uint)), rest, nil
		}
		if !st.dec.allowBigInt {
			return Value{}, b, st.wrap(b, ErrIntOutOfRange)
		}
		n := new(big.Int).SetUint64(tok.Uint)
		z := new(big.Int).Neg(n)
		z.Sub(z, big.NewInt(1))
		return BigInt(z), rest, nil

	case TokBytes:
		return Bytes(tok.Bytes), rest, nil

	case TokString:
		return String(tok.Str), rest, nil

	case TokFalse:
		return Bool(false), rest, nil
	case TokTrue:
		return Bool(true), rest, nil
	case TokNull:
		return Null(), rest, nil
	case TokUndefined:
		return Undefined(), rest, nil

	case TokFloat:
		if st.dec.strict {
			actual := wireFloatWidth(lead)
			minimal := len(rt.AppendFloatCanonical(nil, tok.Float)) - 1
			if actual > minimal {
				return Value{}, b, st.wrap(b, ErrNonCanonicalEncoding)
			}
		}
		return Float(tok.Float), rest, nil

	case TokArray:
		return st.decodeArray(tok, b, rest, depth)

	case TokMap:
		return st.decodeMap(tok, b, rest, depth)

	case TokTag:
		return st.decodeTag(tok, b, rest, depth)

	case TokBreak:
		return Value{}, b, st.wrap(b, ErrStrayBreak)

	default:
		return Value{}, b, st.wrap(b, ErrUnsupportedType)
	}
}

// wireFloatWidth returns the payload width, in bytes, of the float
// literally present on the wire (2/4/8 for f16/f32/f64).
func wireFloatWidth(lead byte) int {
	switch lead & 0x1f {
	case 25:
		return 2
	case 26:
		return 4
	default:
		return 8
	}
}

func (st *decodeState) decodeArray(tok Token, start, rest []byte, depth int) (Value, []byte, error) {
	var items []Value
	if tok.Indefinite {
		for {
			if len(rest) > 0 && jumpTable[rest[0]].isBreak {
				rest = rest[1:]
				break
			}
			var v Value
			var err error
			v, rest, err = st.decodeValue(rest, depth+1)
			if err != nil {
				return Value{}, start, err
			}
			items = append(items, v)
		}
		return Array(items), rest, nil
	}
	items = make([]Value, 0, tok.Uint)
	for i := uint64(0); i < tok.Uint; i++ {
		var v Value
		var err error
		v, rest, err = st.decodeValue(rest, depth+1)
		if err != nil {
			return Value{}, start, err
		}
		items = append(items, v)
	}
	return Array(items), rest, nil
}

func (st *decodeState) decodeMap(tok Token, start, rest []byte, depth int) (Value, []byte, error) {
	var entries []MapEntry
	var prevKeyBytes []byte

	decodeEntry := func() error {
		keyStart := rest
		key, after, err := st.decodeValue(rest, depth+1)
		if err != nil {
			return err
		}
		keyBytes := keyStart[:len(keyStart)-len(after)]

		if !st.dec.useMaps {
			if _, ok := key.String(); !ok {
				return st.wrap(start, ErrNonStringMapKey)
			}
		}
		if st.dec.strict && prevKeyBytes != nil {
			if compareKeys(st.dec.keyOrder, prevKeyBytes, keyBytes) >= 0 {
				return st.wrap(start, ErrMapKeysOutOfOrder)
			}
		}
		if st.dec.rejectDuplicateMapKeys {
			for _, e := range entries {
				if e.Key.Equal(key) {
					return st.wrap(start, ErrDuplicateMapKey)
				}
			}
		}
		prevKeyBytes = keyBytes

		val, after2, err := st.decodeValue(after, depth+1)
		if err != nil {
			return err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
		rest = after2
		return nil
	}

	if tok.Indefinite {
		for {
			if len(rest) > 0 && jumpTable[rest[0]].isBreak {
				rest = rest[1:]
				break
			}
			if err := decodeEntry(); err != nil {
				return Value{}, start, err
			}
		}
		return Map(entries), rest, nil
	}

	entries = make([]MapEntry, 0, tok.Uint)
	for i := uint64(0); i < tok.Uint; i++ {
		if err := decodeEntry(); err != nil {
			return Value{}, start, err
		}
	}
	return Map(entries), rest, nil
}

func (st *decodeState) decodeTag(tok Token, start, rest []byte, depth int) (Value, []byte, error) {
	inner, after, err := st.decodeValue(rest, depth+1)
	if err != nil {
		return Value{}, start, err
	}
	if fn, ok := st.dec.tags.lookup(tok.Uint); ok {
		v, err := fn(inner)
		if err != nil {
			return Value{}, start, err
		}
		return v, after, nil
	}
	return Value{}, start, st.wrap(start, ErrUnknownTag)
}
