package cbor

import "bytes"

// KeyOrder selects which canonical map-key ordering rule the encoder
// and decoder use (§4.6 and the first Open Question it resolves).
type KeyOrder uint8

const (
	// KeyOrderLengthFirst orders encoded keys by length first, then
	// bytewise within equal lengths. This is the original RFC 7049
	// rule and the default, grounded directly on the teacher's
	// runtime.AppendMapDeterministic/AppendRawMapDeterministic.
	KeyOrderLengthFirst KeyOrder = iota

	// KeyOrderBytewise orders encoded keys purely by unsigned
	// byte-for-byte comparison, per RFC 8949.
	KeyOrderBytewise
)

// compareKeys compares two already-encoded CBOR items (typically map
// keys) under the given KeyOrder, returning <0, 0, or >0 the way
// bytes.Compare does.
func compareKeys(order KeyOrder, a, b []byte) int {
	if order == KeyOrderBytewise {
		return bytes.Compare(a, b)
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}
