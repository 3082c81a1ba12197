package cbor

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

var be = binary.BigEndian

// readUintCore reads an unsigned integer with the given expected major type
func readUintCore(b []byte, expectedMajor uint8) (uint64, []byte, error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}

	major := getMajorType(b[0])
	if major != expectedMajor {
		return 0, b, badPrefix(major, expectedMajor)
	}

	addInfo := getAddInfo(b[0])

	switch {
	case addInfo <= addInfoDirect:
		return uint64(addInfo), b[1:], nil
	case addInfo == addInfoUint8:
		if len(b) < 2 {
			return 0, b, ErrShortBytes
		}
		return uint64(b[1]), b[2:], nil
	case addInfo == addInfoUint16:
		if len(b) < 3 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint16(b[1:])), b[3:], nil
	case addInfo == addInfoUint32:
		if len(b) < 5 {
			return 0, b, ErrShortBytes
		}
		return uint64(be.Uint32(b[1:])), b[5:], nil
	case addInfo == addInfoUint64:
		if len(b) < 9 {
			return 0, b, ErrShortBytes
		}
		return be.Uint64(b[1:]), b[9:], nil
	default:
		return 0, b, &ErrUnsupportedType{}
	}
}

// ReadMapHeaderBytes reads a map header
func ReadMapHeaderBytes(b []byte) (sz uint32, o []byte, err error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}

	lead := b[0]

	// Ultra-fast paths: major type 5 (map): 0xa0-0xbb
	if lead >= 0xa0 && lead <= 0xb7 { // size 0-23
		return uint32(lead - 0xa0), b[1:], nil
	}
	if lead == 0xb8 { // size in uint8
		if len(b) < 2 {
			return 0, b, ErrShortBytes
		}
		return uint32(b[1]), b[2:], nil
	}
	if lead == 0xb9 { // size in uint16
		if len(b) < 3 {
			return 0, b, ErrShortBytes
		}
		return uint32(be.Uint16(b[1:])), b[3:], nil
	}
	if lead == 0xba { // size in uint32
		if len(b) < 5 {
			return 0, b, ErrShortBytes
		}
		return be.Uint32(b[1:]), b[5:], nil
	}
	if lead == 0xbb { // size in uint64
		if len(b) < 9 {
			return 0, b, ErrShortBytes
		}
		u := be.Uint64(b[1:])
		if u > math.MaxUint32 {
			return 0, b, UintOverflow{Value: u, FailedBitsize: 32}
		}
		return uint32(u), b[9:], nil
	}

	major := getMajorType(lead)
	return 0, b, badPrefix(major, majorTypeMap)
}

// ReadArrayHeaderBytes reads an array header
func ReadArrayHeaderBytes(b []byte) (sz uint32, o []byte, err error) {
	if len(b) < 1 {
		return 0, b, ErrShortBytes
	}

	lead := b[0]

	// Ultra-fast paths: major type 4 (array): 0x80-0x9b
	if lead >= 0x80 && lead <= 0x97 { // size 0-23
		return uint32(lead - 0x80), b[1:], nil
	}
	if lead == 0x98 { // size in uint8
		if len(b) < 2 {
			return 0, b, ErrShortBytes
		}
		return uint32(b[1]), b[2:], nil
	}
	if lead == 0x99 { // size in uint16
		if len(b) < 3 {
			return 0, b, ErrShortBytes
		}
		return uint32(be.Uint16(b[1:])), b[3:], nil
	}
	if lead == 0x9a { // size in uint32
		if len(b) < 5 {
			return 0, b, ErrShortBytes
		}
		return be.Uint32(b[1:]), b[5:], nil
	}
	if lead == 0x9b { // size in uint64
		if len(b) < 9 {
			return 0, b, ErrShortBytes
		}
		u := be.Uint64(b[1:])
		if u > math.MaxUint32 {
			return 0, b, UintOverflow{Value: u, FailedBitsize: 32}
		}
		return uint32(u), b[9:], nil
	}

	major := getMajorType(lead)
	return 0, b, badPrefix(major, majorTypeArray)
}

// ReadMapStartBytes reads a map start and indicates whether it is indefinite-length.
// If indefinite is true, sz is zero and rest points after the header byte (0xbf).
func ReadMapStartBytes(b []byte) (sz uint32, indefinite bool, rest []byte, err error) {
	if len(b) < 1 {
		return 0, false, b, ErrShortBytes
	}
	if b[0] == makeByte(majorTypeMap, addInfoIndefinite) {
		return 0, true, b[1:], nil
	}
	s, o, e := ReadMapHeaderBytes(b)
	return s, false, o, e
}

// ReadArrayStartBytes reads an array start and indicates whether it is indefinite-length.
// If indefinite is true, sz is zero and rest points after the header byte (0x9f).
func ReadArrayStartBytes(b []byte) (sz uint32, indefinite bool, rest []byte, err error) {
	if len(b) < 1 {
		return 0, false, b, ErrShortBytes
	}
	if b[0] == makeByte(majorTypeArray, addInfoIndefinite) {
		return 0, true, b[1:], nil
	}
	s, o, e := ReadArrayHeaderBytes(b)
	return s, false, o, e
}

// ReadFloat64Bytes reads a float64
func ReadFloat64Bytes(b []byte) (f float64, o []byte, err error) {
	if len(b) < 9 {
		return 0, b, ErrShortBytes
	}
	// Ultra-fast path: direct byte comparison (0xfb = float64)
	if b[0] != 0xfb {
		return 0, b, badPrefix(getMajorType(b[0]), majorTypeSimple)
	}
	f = math.Float64frombits(be.Uint64(b[1:]))
	return f, b[9:], nil
}

// ReadFloat32Bytes reads a float32
func ReadFloat32Bytes(b []byte) (f float32, o []byte, err error) {
	if len(b) < 5 {
		return 0, b, ErrShortBytes
	}
	// Ultra-fast path: direct byte comparison (0xfa = float32)
	if b[0] != 0xfa {
		return 0, b, badPrefix(getMajorType(b[0]), majorTypeSimple)
	}
	f = math.Float32frombits(be.Uint32(b[1:]))
	return f, b[5:], nil
}

// ReadFloat16Bytes reads a float16 (IEEE 754 binary16) and returns float32
func ReadFloat16Bytes(b []byte) (f float32, o []byte, err error) {
	if len(b) < 3 {
		return 0, b, ErrShortBytes
	}
	if b[0] != 0xF9 {
		return 0, b, badPrefix(getMajorType(b[0]), majorTypeSimple)
	}
	h := binary.BigEndian.Uint16(b[1:])
	f = float16BitsToFloat32(h)
	return f, b[3:], nil
}

// ReadNegIntArgBytes reads a major-1 (negative integer) item's raw
// argument n without converting it to the logical value -1-n, so
// callers can represent arguments above math.MaxInt64 (logical values
// below -2^63) as a *big.Int instead of overflowing an int64.
func ReadNegIntArgBytes(b []byte) (n uint64, o []byte, err error) {
	return readUintCore(b, majorTypeNegInt)
}

// ReadUint64Bytes reads a uint64
func ReadUint64Bytes(b []byte) (u uint64, o []byte, err error) {
	return readUintCore(b, majorTypeUint)
}

// ReadBytesBytes reads a byte string
func ReadBytesBytes(b []byte, scratch []byte) (v []byte, o []byte, err error) {
	if len(b) < 1 {
		return nil, b, ErrShortBytes
	}
	// Indefinite form: 0x5f
	if b[0] == makeByte(majorTypeBytes, addInfoIndefinite) {
		out := scratch[:0]
		p := b[1:]
		for {
			if len(p) < 1 {
				return nil, b, ErrShortBytes
			}
			// Break?
			if p[0] == makeByte(majorTypeSimple, simpleBreak) {
				return out, p[1:], nil
			}
			// Next must be a definite-length byte string
			sz, q, e := readUintCore(p, majorTypeBytes)
			if e != nil {
				return nil, b, e
			}
			if uint64(len(q)) < sz {
				return nil, b, ErrShortBytes
			}
			out = append(out, q[:sz]...)
			p = q[sz:]
		}
	}
	lead := b[0]
	if lead >= 0x40 && lead <= 0x57 { // byte string length 0-23
		sz := int(lead & 0x1f)
		if len(b) < 1+sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], b[1:], nil
		}
		return b[1 : 1+sz], b[1+sz:], nil
	}
	switch lead {
	case 0x58: // uint8
		if len(b) < 2 {
			return nil, b, ErrShortBytes
		}
		sz := int(b[1])
		if len(b) < 2+sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], b[2:], nil
		}
		return b[2 : 2+sz], b[2+sz:], nil
	case 0x59: // uint16
		if len(b) < 3 {
			return nil, b, ErrShortBytes
		}
		sz := int(be.Uint16(b[1:]))
		if len(b) < 3+sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], b[3:], nil
		}
		return b[3 : 3+sz], b[3+sz:], nil
	case 0x5a: // uint32
		if len(b) < 5 {
			return nil, b, ErrShortBytes
		}
		sz := int(be.Uint32(b[1:]))
		if len(b) < 5+sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], b[5:], nil
		}
		return b[5 : 5+sz], b[5+sz:], nil
	case 0x5b: // uint64
		if len(b) < 9 {
			return nil, b, ErrShortBytes
		}
		u64 := be.Uint64(b[1:])
		if u64 > math.MaxInt {
			return nil, b, UintOverflow{Value: u64, FailedBitsize: 64}
		}
		sz := int(u64)
		if len(b) < 9+sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], b[9:], nil
		}
		return b[9 : 9+sz], b[9+sz:], nil
	default:
		sz, o, err := readUintCore(b, majorTypeBytes)
		if err != nil {
			return nil, b, err
		}
		if uint64(len(o)) < sz {
			return nil, b, ErrShortBytes
		}
		if sz == 0 {
			return scratch[:0], o, nil
		}
		return o[:sz], o[sz:], nil
	}
}

// ReadStringZC reads a text string zero-copy (returns slice into original buffer)
func ReadStringZC(b []byte) (v []byte, o []byte, err error) {
	if len(b) < 1 {
		return nil, b, ErrShortBytes
	}

	lead := b[0]

	// Ultra-fast path for length 0-23
	if lead >= 0x60 && lead <= 0x77 {
		sz := int(lead & 0x1f)
		if len(b) < 1+sz {
			return nil, b, ErrShortBytes
		}
		return b[1 : 1+sz], b[1+sz:], nil
	}

	// Longer strings
	var sz int
	var start int

	switch lead {
	case 0x78: // uint8
		if len(b) < 2 {
			return nil, b, ErrShortBytes
		}
		sz = int(b[1])
		start = 2
	case 0x79: // uint16
		if len(b) < 3 {
			return nil, b, ErrShortBytes
		}
		sz = int(be.Uint16(b[1:]))
		start = 3
	case 0x7a: // uint32
		if len(b) < 5 {
			return nil, b, ErrShortBytes
		}
		sz = int(be.Uint32(b[1:]))
		start = 5
	case 0x7b: // uint64
		if len(b) < 9 {
			return nil, b, ErrShortBytes
		}
		u64 := be.Uint64(b[1:])
		if u64 > math.MaxInt {
			return nil, b, UintOverflow{Value: u64, FailedBitsize: 64}
		}
		sz = int(u64)
		start = 9
	default:
		// Invalid major type
		major := getMajorType(lead)
		return nil, b, badPrefix(major, majorTypeText)
	}

	// Guard against integer overflow and out-of-bounds slicing.
	// Use subtraction form to avoid start+sz overflow when sz is near MaxInt.
	if start < 0 || start > len(b) {
		return nil, b, ErrShortBytes
	}
	if sz < 0 || sz > len(b)-start {
		return nil, b, ErrShortBytes
	}
	end := start + sz
	return b[start:end], b[end:], nil
}

// ReadStringBytes reads a text string
func ReadStringBytes(b []byte) (s string, o []byte, err error) {
	if len(b) < 1 {
		return "", b, ErrShortBytes
	}
	// Indefinite-length text string (0x7f)
	if b[0] == makeByte(majorTypeText, addInfoIndefinite) {
		p := b[1:]
		var out []byte
		for {
			if len(p) < 1 {
				return "", b, ErrShortBytes
			}
			if p[0] == makeByte(majorTypeSimple, simpleBreak) {
				if ValidateUTF8OnDecode && !isUTF8Valid(out) {
					return "", b, ErrInvalidUTF8
				}
				return string(out), p[1:], nil
			}
			chunk, q, e := ReadStringZC(p)
			if e != nil {
				return "", b, e
			}
			out = append(out, chunk...)
			p = q
		}
	}
	v, o, err := ReadStringZC(b)
	if err != nil {
		return "", b, err
	}
	if ValidateUTF8OnDecode && !isUTF8Valid(v) {
		return "", b, ErrInvalidUTF8
	}
	if UnsafeStringDecode {
		return UnsafeString(v), o, nil
	}
	return string(v), o, nil
}

// ReadTagBytes reads a semantic tag value (major type 6)
func ReadTagBytes(b []byte) (tag uint64, o []byte, err error) {
	tag, o, err = readUintCore(b, majorTypeTag)
	if err != nil {
		return 0, b, err
	}
	return tag, o, nil
}

// float16BitsToFloat32 converts IEEE 754 binary16 bits to float32
func float16BitsToFloat32(h uint16) float32 {
	return float16.Float16(h).Float32()
}
