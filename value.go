package cbor

import (
	"math/big"
)

// ValueKind identifies which of the closed set of logical CBOR value
// variants a Value holds.
//
// This mirrors the teacher's runtime.Number, which multiplexes int64/
// uint64/float32/float64 over one bits field with a type tag, widened
// to the full value domain: bytes, strings, arrays, maps, and tags
// join the numeric/bool/null/undefined variants.
type ValueKind uint8

const (
	KindInt64 ValueKind = iota
	KindUint64
	KindBigInt
	KindFloat64
	KindBool
	KindNull
	KindUndefined
	KindBytes
	KindString
	KindArray
	KindMap
	KindTag
)

func (k ValueKind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindBigInt:
		return "bigint"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	default:
		return "<invalid>"
	}
}

// MapEntry is one key/value pair of a Value holding KindMap. Entries
// are stored in insertion order; Encode imposes canonical order.
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is the closed sum type over the logical CBOR value domain
// (§3.3): every Value is exactly one of the variants named by
// ValueKind, never an open interface.
type Value struct {
	kind ValueKind

	i    int64
	u    uint64
	f    float64
	b    bool
	big  *big.Int
	bs   []byte
	s    string
	arr  []Value
	m    []MapEntry
	tag  uint64
	elem *Value
}

func (v Value) Kind() ValueKind { return v.kind }

// Int wraps a signed 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt64, i: i} }

// Uint wraps an unsigned integer outside the signed 64-bit range.
// Non-negative values that fit in int64 should use Int instead; Uint
// exists for the (maxInt64, maxUint64] band major type 0 can encode.
func Uint(u uint64) Value { return Value{kind: KindUint64, u: u} }

// BigInt wraps an arbitrary-precision integer. Encode represents it
// as a plain major-0/1 integer when it fits in [-2^64, 2^64-1], and
// otherwise requires a registered type encoder (ErrBigIntRequiresTag).
func BigInt(z *big.Int) Value { return Value{kind: KindBigInt, big: new(big.Int).Set(z)} }

// Float wraps an IEEE-754 binary64 floating point number.
func Float(f float64) Value { return Value{kind: KindFloat64, f: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the CBOR null value.
func Null() Value { return Value{kind: KindNull} }

// Undefined returns the CBOR undefined value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Bytes wraps a byte sequence. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bs: b} }

// String wraps a UTF-8 text value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered list of values. The slice is not copied.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Map wraps an insertion-ordered list of key/value entries. Encode
// re-sorts entries by encoded-key bytes; decode preserves wire order
// when useMaps is requested.
func Map(entries []MapEntry) Value { return Value{kind: KindMap, m: entries} }

// Tag wraps a semantic tag number and its inner value.
func Tag(num uint64, inner Value) Value {
	v := inner
	return Value{kind: KindTag, tag: num, elem: &v}
}

// Int64 returns the value as an int64 and reports whether the Value
// held KindInt64.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

// Uint64 returns the value as a uint64 and reports whether the Value
// held KindUint64.
func (v Value) Uint64() (uint64, bool) {
	if v.kind != KindUint64 {
		return 0, false
	}
	return v.u, true
}

// BigInt returns the value as a *big.Int and reports whether the
// Value held KindBigInt.
func (v Value) BigInt() (*big.Int, bool) {
	if v.kind != KindBigInt {
		return nil, false
	}
	return v.big, true
}

// Float64 returns the value as a float64 and reports whether the
// Value held KindFloat64.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return v.f, true
}

// Bool returns the value as a bool and reports whether the Value held
// KindBool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Bytes returns the value's byte sequence and reports whether the
// Value held KindBytes.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bs, true
}

// String returns the value's text and reports whether the Value held
// KindString.
func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Array returns the value's element list and reports whether the
// Value held KindArray.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Map returns the value's entry list and reports whether the Value
// held KindMap.
func (v Value) Map() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// TagValue returns the value's tag number and inner value, and
// reports whether the Value held KindTag.
func (v Value) TagValue() (uint64, Value, bool) {
	if v.kind != KindTag {
		return 0, Value{}, false
	}
	return v.tag, *v.elem, true
}

// IsInteger reports whether v holds one of the integer variants
// (KindInt64, KindUint64, KindBigInt).
func (v Value) IsInteger() bool {
	switch v.kind {
	case KindInt64, KindUint64, KindBigInt:
		return true
	default:
		return false
	}
}

// Equal reports whether v and other represent the same logical value.
// Integer variants compare by numeric value, not by which variant
// holds them, so Int(5) and Uint(5) are Equal.
func (v Value) Equal(other Value) bool {
	if v.IsInteger() && other.IsInteger() {
		return v.integerValue().Cmp(other.integerValue()) == 0
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFloat64:
		return v.f == other.f || (v.f != v.f && other.f != other.f) // NaN == NaN here
	case KindBool:
		return v.b == other.b
	case KindNull, KindUndefined:
		return true
	case KindBytes:
		return string(v.bs) == string(other.bs)
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(other.m[i].Key) || !v.m[i].Value.Equal(other.m[i].Value) {
				return false
			}
		}
		return true
	case KindTag:
		return v.tag == other.tag && v.elem.Equal(*other.elem)
	default:
		return false
	}
}

// integerValue normalizes any integer variant to a *big.Int for
// comparison.
func (v Value) integerValue() *big.Int {
	switch v.kind {
	case KindInt64:
		return big.NewInt(v.i)
	case KindUint64:
		return new(big.Int).SetUint64(v.u)
	case KindBigInt:
		return v.big
	default:
		return big.NewInt(0)
	}
}
