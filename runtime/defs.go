// Package cbor implements the low-level RFC 8949 wire-format primitives
// that the github.com/cbordet/cbor package builds its deterministic
// encoder and strict decoder on top of.
//
// This package defines two families of functions, both operating on
// plain []byte so the caller controls all allocation:
//   - AppendXxxx() appends an object to a []byte in CBOR encoding.
//   - ReadXxxxBytes() reads an object from a []byte and returns the remaining bytes.
package cbor

// RawPair represents an already-encoded CBOR key/value pair.
// Key and Value must each contain exactly one CBOR item.
type RawPair struct {
	Key   []byte
	Value []byte
}

const (
	// recursionLimit bounds the call depth of validate's recursive descent.
	recursionLimit = 100000
)

// CBOR major types (3 bits)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // float, simple values, break
)

// Additional info values (5 bits)
const (
	// 0-23: literal value
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte uint8 follows
	addInfoUint16     = 25 // 2-byte uint16 follows
	addInfoUint32     = 26 // 4-byte uint32 follows
	addInfoUint64     = 27 // 8-byte uint64 follows
	addInfoIndefinite = 31 // indefinite length (for bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

// makeByte creates a CBOR initial byte from major type and additional info
func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

// getMajorType extracts the major type from a CBOR initial byte
func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

// getAddInfo extracts the additional info from a CBOR initial byte
func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

// ValidateUTF8OnDecode controls whether ReadStringBytes validates UTF-8.
// Enabled by default for spec compliance; can be disabled in hot paths.
var ValidateUTF8OnDecode = true

// UnsafeStringDecode controls whether ReadStringBytes converts zero-copy using
// UnsafeString (unsafe) instead of allocating a new string. Disabled by default.
var UnsafeStringDecode = false
