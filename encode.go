package cbor

import (
	"math"
	"math/big"
	"unsafe"

	rt "github.com/cbordet/cbor/runtime"
)

// EncodeOption configures an Encoder (§4.4's options table).
type EncodeOption func(*Encoder)

// WithFloat64 disables float minimization: every float is emitted as a
// binary64, skipping the f16/f32 round-trip attempts.
func WithFloat64() EncodeOption {
	return func(e *Encoder) { e.float64Only = true }
}

// WithTypeEncoder registers fn as the encoder for the given logical
// type name (one of the closed classifier names in §4.7: "uint",
// "negint", "float", "bigint", "bool", "null", "undefined", "bytes",
// "string", "array", "map", "tag").
func WithTypeEncoder(typeName string, fn TypeEncoderFunc) EncodeOption {
	return func(e *Encoder) {
		if e.typeEncoders == nil {
			e.typeEncoders = make(map[string]TypeEncoderFunc)
		}
		e.typeEncoders[typeName] = fn
	}
}

// WithKeyOrder selects the map-key canonical ordering rule (§4.6).
func WithKeyOrder(order KeyOrder) EncodeOption {
	return func(e *Encoder) { e.keyOrder = order }
}

// WithMaxDepth overrides the default maximum nesting depth (§5).
func WithMaxDepth(depth int) EncodeOption {
	return func(e *Encoder) { e.maxDepth = depth }
}

// Encoder holds the configuration for one family of Encode calls. The
// zero value is not usable; construct with NewEncoder.
type Encoder struct {
	float64Only  bool
	typeEncoders map[string]TypeEncoderFunc
	keyOrder     KeyOrder
	maxDepth     int
}

// NewEncoder builds an Encoder with the given options applied over the
// defaults: float minimization on, no type encoders, length-first key
// order, max depth 64.
func NewEncoder(opts ...EncodeOption) *Encoder {
	e := &Encoder{keyOrder: KeyOrderLengthFirst, maxDepth: 64}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode serializes v to its canonical CBOR encoding under e's options.
func (e *Encoder) Encode(v Value) ([]byte, error) {
	return e.EncodeInto(make([]byte, 0, estimateSize(v)), v)
}

// EncodeInto appends v's canonical encoding to b and returns the grown
// slice, the way rt's Append family does. Callers that encode many
// values in sequence (StreamEncoder's pooled buffer) can pass the same
// backing slice back in each time instead of letting Encode allocate
// fresh on every call.
func (e *Encoder) EncodeInto(b []byte, v Value) ([]byte, error) {
	st := &encodeState{enc: e, ancestors: make(map[uintptr]struct{})}
	return st.encode(v, b, 0)
}

// estimateSize sizes the initial buffer off runtime's worst-case
// per-type constants, avoiding repeated grow-and-copy for the common
// top-level shapes (a scalar, or an array/map of scalars) without
// pretending to bound genuinely nested input.
func estimateSize(v Value) int {
	switch v.kind {
	case KindArray:
		return rt.ArrayHeaderSize + len(v.arr)*rt.Int64Size
	case KindMap:
		return rt.MapHeaderSize + len(v.m)*2*rt.Int64Size
	case KindString:
		return rt.StringPrefixSize + len(v.s)
	case KindBytes:
		return rt.BytesPrefixSize + len(v.bs)
	default:
		return rt.Int64Size
	}
}

// Encode is the package-level convenience form of (*Encoder).Encode,
// building a one-shot Encoder from opts.
func Encode(v Value, opts ...EncodeOption) ([]byte, error) {
	return NewEncoder(opts...).Encode(v)
}

type encodeState struct {
	enc       *Encoder
	ancestors map[uintptr]struct{}
}

func (st *encodeState) encode(v Value, b []byte, depth int) ([]byte, error) {
	if depth > st.enc.maxDepth {
		return nil, ErrMaxDepthExceeded
	}

	if fn, ok := st.enc.typeEncoders[classifyValue(v)]; ok {
		if tokens, ok := fn(v); ok {
			return serializeTokensInto(b, tokens)
		}
	}

	switch v.kind {
	case KindInt64:
		if v.i < 0 {
			return rt.AppendInt64(b, v.i), nil
		}
		return rt.AppendUint64(b, uint64(v.i)), nil

	case KindUint64:
		return rt.AppendUint64(b, v.u), nil

	case KindBigInt:
		return encodeBigInt(b, v.big)

	case KindFloat64:
		return st.encodeFloat(b, v.f)

	case KindBool:
		return rt.AppendBool(b, v.b), nil

	case KindNull:
		return rt.AppendNil(b), nil

	case KindUndefined:
		return rt.AppendUndefined(b), nil

	case KindBytes:
		return rt.AppendBytes(b, v.bs), nil

	case KindString:
		return rt.AppendString(b, v.s), nil

	case KindArray:
		return st.encodeArray(v, b, depth)

	case KindMap:
		return st.encodeMap(v, b, depth)

	case KindTag:
		return st.encodeTag(v, b, depth)

	default:
		return nil, ErrUnsupportedType
	}
}

// encodeBigInt implements §4.4's arbitrary-precision integer rule: a
// value within [-2^64, 2^64-1] becomes a plain major-0/1 integer in
// smallest form; anything wider fails unless a type encoder handled it
// already (checked by the caller before reaching here).
func encodeBigInt(b []byte, z *big.Int) ([]byte, error) {
	if z.Sign() >= 0 {
		if z.BitLen() > 64 {
			return nil, ErrBigIntRequiresTag
		}
		return rt.AppendUint64(b, z.Uint64()), nil
	}
	// n = -1-z, the major-1 wire argument. z ranges down to -2^64, so n
	// ranges up to 2^64-1 and always fits a uint64.
	n := new(big.Int).Neg(z)
	n.Sub(n, big.NewInt(1))
	if n.BitLen() > 64 {
		return nil, ErrBigIntRequiresTag
	}
	return rt.AppendNegIntArg(b, n.Uint64()), nil
}

// encodeFloat implements §4.4's float rule: integer-valued floats that
// fit signed 64-bit range are normalized to a plain integer; otherwise
// the smallest round-tripping width is chosen (or f64 under
// WithFloat64).
func (st *encodeState) encodeFloat(b []byte, f float64) ([]byte, error) {
	if !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) &&
		f >= math.MinInt64 && f < 9223372036854775808.0 {
		return rt.AppendInt64(b, int64(f)), nil
	}
	if st.enc.float64Only {
		return rt.AppendFloat64(b, f), nil
	}
	return rt.AppendFloatCanonical(b, f), nil
}

func (st *encodeState) encodeArray(v Value, b []byte, depth int) ([]byte, error) {
	id, pop := st.pushAncestor(v.arr)
	if !pop {
		return nil, ErrCircularReference
	}
	defer st.popAncestor(id)

	b = rt.AppendArrayHeader(b, uint32(len(v.arr)))
	var err error
	for i := range v.arr {
		b, err = st.encode(v.arr[i], b, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (st *encodeState) encodeMap(v Value, b []byte, depth int) ([]byte, error) {
	id, pop := st.pushAncestor(v.m)
	if !pop {
		return nil, ErrCircularReference
	}
	defer st.popAncestor(id)

	pairs := make([]rt.RawPair, len(v.m))
	for i, entry := range v.m {
		key, err := st.encode(entry.Key, nil, depth+1)
		if err != nil {
			return nil, err
		}
		val, err := st.encode(entry.Value, nil, depth+1)
		if err != nil {
			return nil, err
		}
		pairs[i] = rt.RawPair{Key: key, Value: val}
	}

	if st.enc.keyOrder == KeyOrderLengthFirst {
		return rt.AppendRawMapDeterministic(b, pairs), nil
	}

	sortPairsBytewise(pairs)
	b = rt.AppendMapHeader(b, uint32(len(pairs)))
	for _, p := range pairs {
		b = append(b, p.Key...)
		b = append(b, p.Value...)
	}
	return b, nil
}

func sortPairsBytewise(pairs []rt.RawPair) {
	// Small-n insertion sort: map arities in practice are small, and
	// this avoids pulling in sort.Slice's reflection-based comparator
	// for what is usually a handful of entries.
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && compareKeys(KeyOrderBytewise, pairs[j-1].Key, pairs[j].Key) > 0; j-- {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
		}
	}
}

func (st *encodeState) encodeTag(v Value, b []byte, depth int) ([]byte, error) {
	b = rt.AppendTag(b, v.tag)
	return st.encode(*v.elem, b, depth+1)
}

// pushAncestor registers ptr's backing array identity as being on the
// current recursion path, failing if it is already present (§4.4 step
// 4, §9's ancestor-stack cycle detection). The returned id must be
// passed to popAncestor on return; ok is false if a cycle was found,
// in which case nothing was registered.
func (st *encodeState) pushAncestor(s any) (uintptr, bool) {
	ptr := sliceDataPointer(s)
	if ptr == 0 {
		return 0, true // empty slice: no identity to collide on
	}
	if _, seen := st.ancestors[ptr]; seen {
		return 0, false
	}
	st.ancestors[ptr] = struct{}{}
	return ptr, true
}

func (st *encodeState) popAncestor(id uintptr) {
	if id != 0 {
		delete(st.ancestors, id)
	}
}

// sliceDataPointer returns the address of s's backing array, or 0 for
// a nil/empty slice. s must be []Value or []MapEntry.
func sliceDataPointer(s any) uintptr {
	switch t := s.(type) {
	case []Value:
		if len(t) == 0 {
			return 0
		}
		return uintptr(unsafe.Pointer(&t[0]))
	case []MapEntry:
		if len(t) == 0 {
			return 0
		}
		return uintptr(unsafe.Pointer(&t[0]))
	default:
		return 0
	}
}
