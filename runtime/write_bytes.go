package cbor

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"

	"github.com/x448/float16"
)

// ensure 'sz' extra bytes in 'b' btw len(b) and cap(b)
func ensure(b []byte, sz int) ([]byte, int) {
	l := len(b)
	c := cap(b)
	if c-l < sz {
		o := make([]byte, (2*c)+sz) // exponential growth
		n := copy(o, b)
		return o[:n+sz], n
	}
	return b[:l+sz], l
}

// appendUintCore encodes an unsigned integer with the given major type
func appendUintCore(b []byte, majorType uint8, u uint64) []byte {
	switch {
	case u <= addInfoDirect:
		return append(b, makeByte(majorType, uint8(u)))
	case u <= math.MaxUint8:
		o, n := ensure(b, 2)
		o[n] = makeByte(majorType, addInfoUint8)
		o[n+1] = uint8(u)
		return o
	case u <= math.MaxUint16:
		o, n := ensure(b, 3)
		o[n] = makeByte(majorType, addInfoUint16)
		binary.BigEndian.PutUint16(o[n+1:], uint16(u))
		return o
	case u <= math.MaxUint32:
		o, n := ensure(b, 5)
		o[n] = makeByte(majorType, addInfoUint32)
		binary.BigEndian.PutUint32(o[n+1:], uint32(u))
		return o
	default:
		o, n := ensure(b, 9)
		o[n] = makeByte(majorType, addInfoUint64)
		binary.BigEndian.PutUint64(o[n+1:], u)
		return o
	}
}

// AppendMapHeader appends a map header with the given size
func AppendMapHeader(b []byte, sz uint32) []byte {
	return appendUintCore(b, majorTypeMap, uint64(sz))
}

// AppendArrayHeader appends an array header with the given size
func AppendArrayHeader(b []byte, sz uint32) []byte {
	return appendUintCore(b, majorTypeArray, uint64(sz))
}

// AppendArrayHeaderIndefinite appends an indefinite-length array header (0x9f)
func AppendArrayHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeArray, addInfoIndefinite))
}

// AppendNil appends a nil value
func AppendNil(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleNull))
}

// AppendUndefined appends an undefined simple value (23)
func AppendUndefined(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleUndefined))
}

// AppendFloat64 appends a float64
func AppendFloat64(b []byte, f float64) []byte {
	o, n := ensure(b, 9)
	o[n] = makeByte(majorTypeSimple, simpleFloat64)
	binary.BigEndian.PutUint64(o[n+1:], math.Float64bits(f))
	return o
}

// AppendFloat32 appends a float32
func AppendFloat32(b []byte, f float32) []byte {
	o, n := ensure(b, 5)
	o[n] = makeByte(majorTypeSimple, simpleFloat32)
	binary.BigEndian.PutUint32(o[n+1:], math.Float32bits(f))
	return o
}

// AppendFloatCanonical appends the shortest-width float (f16/f32/f64) that preserves the value.
func AppendFloatCanonical(b []byte, f float64) []byte {
	// Normalize -0 to +0 for canonical
	if f == 0 && math.Signbit(f) {
		f = 0
	}
	// NaN: canonicalize to float16 NaN
	if math.IsNaN(f) {
		return AppendFloat16(b, float32(f))
	}
	// Try f16
	f16 := float32ToFloat16Bits(float32(f))
	if float64(float16BitsToFloat32(f16)) == f {
		return AppendFloat16(b, float32(f))
	}
	// Try f32
	f32 := float32(f)
	if float64(f32) == f {
		return AppendFloat32(b, f32)
	}
	return AppendFloat64(b, f)
}

// AppendFloat16 appends a float16 (IEEE 754 binary16) encoded value
func AppendFloat16(b []byte, f float32) []byte {
	o, n := ensure(b, 3)
	o[n] = makeByte(majorTypeSimple, simpleFloat16)
	binary.BigEndian.PutUint16(o[n+1:], float32ToFloat16Bits(f))
	return o
}

// AppendInt64 appends an int64 using canonical CBOR integer encoding.
//
// For small values in the common ranges we specialize the encoding
// inline rather than routing through appendUintCore. This mirrors the
// fast-path treatment used in the original tinylib/msgp runtime while
// preserving CBOR's major-type and additional-info layout.
func AppendInt64(b []byte, i int64) []byte {
	// Fast path for small positive values 0..23 (single-byte encoding).
	if i >= 0 && i <= addInfoDirect {
		return append(b, makeByte(majorTypeUint, uint8(i)))
	}
	// Fast path for small negative values -1..-24. CBOR encodes
	// negative integers as -1-n with unsigned argument n.
	if i < 0 {
		neg := -1 - i // n such that value = -1-n
		if neg >= 0 && neg <= addInfoDirect {
			return append(b, makeByte(majorTypeNegInt, uint8(neg)))
		}
		return appendUintCore(b, majorTypeNegInt, uint64(neg))
	}
	// Remaining positive values go through the generic uint encoder.
	return appendUintCore(b, majorTypeUint, uint64(i))
}

// AppendNegIntArg appends a major-1 (negative integer) item whose raw
// argument is n, i.e. the logical value -1-n. AppendInt64 cannot reach
// arguments above math.MaxInt64 (logical values below -2^63), since an
// int64 can't hold them; this covers the rest of major type 1's
// argument range, up to n = math.MaxUint64 (logical value -2^64).
func AppendNegIntArg(b []byte, n uint64) []byte {
	return appendUintCore(b, majorTypeNegInt, n)
}

// AppendUint64 appends a uint64
func AppendUint64(b []byte, u uint64) []byte {
	return appendUintCore(b, majorTypeUint, u)
}

// AppendBytes appends a byte string
func AppendBytes(b []byte, data []byte) []byte {
	sz := uint64(len(data))
	// Compute header size and reserve in one shot to avoid double ensure + copy
	var h int
	switch {
	case sz <= addInfoDirect:
		h = 1
	case sz <= math.MaxUint8:
		h = 2
	case sz <= math.MaxUint16:
		h = 3
	case sz <= math.MaxUint32:
		h = 5
	default:
		h = 9
	}
	o, n := ensure(b, h+int(sz))
	// Write header
	switch h {
	case 1:
		o[n] = makeByte(majorTypeBytes, uint8(sz))
		n++
	case 2:
		o[n] = makeByte(majorTypeBytes, addInfoUint8)
		o[n+1] = uint8(sz)
		n += 2
	case 3:
		o[n] = makeByte(majorTypeBytes, addInfoUint16)
		binary.BigEndian.PutUint16(o[n+1:], uint16(sz))
		n += 3
	case 5:
		o[n] = makeByte(majorTypeBytes, addInfoUint32)
		binary.BigEndian.PutUint32(o[n+1:], uint32(sz))
		n += 5
	case 9:
		o[n] = makeByte(majorTypeBytes, addInfoUint64)
		binary.BigEndian.PutUint64(o[n+1:], sz)
		n += 9
	}
	// Copy payload
	copy(o[n:], data)
	return o[:n+int(sz)]
}

// AppendString appends a text string
func AppendString(b []byte, s string) []byte {
	sz := uint64(len(s))
	// Compute header size and reserve once
	var h int
	switch {
	case sz <= addInfoDirect:
		h = 1
	case sz <= math.MaxUint8:
		h = 2
	case sz <= math.MaxUint16:
		h = 3
	case sz <= math.MaxUint32:
		h = 5
	default:
		h = 9
	}
	o, n := ensure(b, h+int(sz))
	// Write header
	switch h {
	case 1:
		o[n] = makeByte(majorTypeText, uint8(sz))
		n++
	case 2:
		o[n] = makeByte(majorTypeText, addInfoUint8)
		o[n+1] = uint8(sz)
		n += 2
	case 3:
		o[n] = makeByte(majorTypeText, addInfoUint16)
		binary.BigEndian.PutUint16(o[n+1:], uint16(sz))
		n += 3
	case 5:
		o[n] = makeByte(majorTypeText, addInfoUint32)
		binary.BigEndian.PutUint32(o[n+1:], uint32(sz))
		n += 5
	case 9:
		o[n] = makeByte(majorTypeText, addInfoUint64)
		binary.BigEndian.PutUint64(o[n+1:], sz)
		n += 9
	}
	// Copy payload
	copy(o[n:], s)
	return o[:n+int(sz)]
}

// AppendBool appends a bool
func AppendBool(b []byte, val bool) []byte {
	if val {
		return append(b, makeByte(majorTypeSimple, simpleTrue))
	}
	return append(b, makeByte(majorTypeSimple, simpleFalse))
}

// AppendTag appends a generic semantic tag
func AppendTag(b []byte, tag uint64) []byte {
	return appendUintCore(b, majorTypeTag, tag)
}

// float32ToFloat16Bits converts float32 to IEEE 754 binary16 representation (round to nearest even)
func float32ToFloat16Bits(f float32) uint16 {
	h := float16.Fromfloat32(f)
	if h.IsNaN() {
		// Canonicalize NaN to a single bit pattern regardless of payload
		// or sign, so every NaN value maps to the same encoded bytes.
		return canonicalNaN16
	}
	return uint16(h)
}

// AppendMapHeaderIndefinite appends an indefinite-length map header (0xbf)
func AppendMapHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeMap, addInfoIndefinite))
}

// AppendBreak appends a break stop code (0xff)
func AppendBreak(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleBreak))
}

// AppendRawMapDeterministic appends a map with entries provided as raw CBOR key/value pairs.
// Pairs are sorted by CBOR-encoded key bytes in length-first order (the RFC 7049 rule).
func AppendRawMapDeterministic(b []byte, pairs []RawPair) []byte {
	// Deterministic order: by encoded key length, then bytewise lexicographic.
	n := len(pairs)
	if n == 0 {
		return AppendMapHeader(b, 0)
	}
	// Bucket indices by key length.
	byLen := make(map[int][]int)
	for i := 0; i < n; i++ {
		l := len(pairs[i].Key)
		byLen[l] = append(byLen[l], i)
	}
	lens := make([]int, 0, len(byLen))
	for l := range byLen {
		lens = append(lens, l)
	}
	sort.Ints(lens)
	order := make([]int, 0, n)
	counts := make([]int, 256)
	var tmp []int
	for _, l := range lens {
		grp := byLen[l]
		if len(grp) <= 1 {
			order = append(order, grp...)
			continue
		}
		// Adaptive: comparator is faster for smaller groups/short keys.
		if l < 64 && len(grp) < 1024 {
			sort.Slice(grp, func(i, j int) bool { return bytes.Compare(pairs[grp[i]].Key, pairs[grp[j]].Key) < 0 })
			order = append(order, grp...)
			continue
		}
		if cap(tmp) < len(grp) {
			tmp = make([]int, len(grp))
		} else {
			tmp = tmp[:len(grp)]
		}
		cur := grp
		aux := tmp
		for pos := l - 1; pos >= 0; pos-- {
			for i := range counts {
				counts[i] = 0
			}
			for _, idx := range cur {
				counts[int(pairs[idx].Key[pos])]++
			}
			sum := 0
			for i := 0; i < 256; i++ {
				c := counts[i]
				counts[i] = sum
				sum += c
			}
			for _, idx := range cur {
				bv := pairs[idx].Key[pos]
				p := counts[int(bv)]
				aux[p] = idx
				counts[int(bv)] = p + 1
			}
			cur, aux = aux, cur
		}
		order = append(order, cur...)
	}
	b = AppendMapHeader(b, uint32(n))
	for _, i := range order {
		b = append(b, pairs[i].Key...)
		b = append(b, pairs[i].Value...)
	}
	return b
}
