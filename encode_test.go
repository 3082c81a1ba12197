package cbor

import (
	"encoding/hex"
	"math"
	"math/big"
	"testing"
)

func encodeHex(t *testing.T, v Value, opts ...EncodeOption) string {
	t.Helper()
	b, err := Encode(v, opts...)
	if err != nil {
		t.Fatalf("Encode(%#v): %v", v, err)
	}
	return hex.EncodeToString(b)
}

func TestEncodeSmallestFormIntegers(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(0), "00"},
		{Int(23), "17"},
		{Int(24), "1818"},
		{Int(255), "18ff"},
		{Int(256), "190100"},
		{Int(-1), "20"},
		{Int(-24), "37"},
		{Int(-25), "3818"},
		{Uint(18446744073709551615), "1bffffffffffffffff"},
	}
	for _, c := range cases {
		if got := encodeHex(t, c.v); got != c.want {
			t.Errorf("Encode(%#v) = %s, want %s", c.v, got, c.want)
		}
	}
}

func TestEncodeBigIntWithinBound(t *testing.T) {
	z := new(big.Int).Lsh(big.NewInt(1), 64)
	z.Sub(z, big.NewInt(1)) // 2^64-1, fits plain uint64
	if got, want := encodeHex(t, BigInt(z)), "1bffffffffffffffff"; got != want {
		t.Errorf("Encode(BigInt(2^64-1)) = %s, want %s", got, want)
	}

	neg := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 64)) // -2^64
	if got, want := encodeHex(t, BigInt(neg)), "3bffffffffffffffff"; got != want {
		t.Errorf("Encode(BigInt(-2^64)) = %s, want %s", got, want)
	}
}

func TestEncodeBigIntOutsideBoundRequiresTypeEncoder(t *testing.T) {
	z := new(big.Int).Lsh(big.NewInt(1), 64) // 2^64, one past the plain-integer bound
	_, err := Encode(BigInt(z))
	if err != ErrBigIntRequiresTag {
		t.Fatalf("Encode error = %v, want ErrBigIntRequiresTag", err)
	}

	enc := func(v Value) ([]Token, bool) {
		z, ok := v.BigInt()
		if !ok {
			return nil, false
		}
		bs := z.Bytes()
		return []Token{
			{Type: TokTag, Uint: TagPosBignum},
			{Type: TokBytes, Bytes: bs},
		}, true
	}
	b, err := Encode(BigInt(z), WithTypeEncoder("bigint", enc))
	if err != nil {
		t.Fatalf("Encode with type encoder: %v", err)
	}
	v, err := Decode(b, WithTagSet(DefaultTagSet()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := v.BigInt()
	if !ok || got.Cmp(z) != 0 {
		t.Fatalf("round-trip got %v, want %v", got, z)
	}
}

func TestEncodeFloatNormalizesIntegerValued(t *testing.T) {
	// An integer-valued float within int64 range is normalized to a
	// plain integer, not a float, per §4.4.
	if got, want := encodeHex(t, Float(1.0)), "01"; got != want {
		t.Errorf("Encode(Float(1.0)) = %s, want %s", got, want)
	}
	if got, want := encodeHex(t, Float(-1.0)), "20"; got != want {
		t.Errorf("Encode(Float(-1.0)) = %s, want %s", got, want)
	}
}

func TestEncodeFloatMinimalWidth(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{1.5, "f93e00"},            // exact in f16
		{100000.5, "fa47c35040"},   // not exact in f16, exact in f32
		{0.1, "fb3fb999999999999a"}, // needs f64
	}
	for _, c := range cases {
		if got := encodeHex(t, Float(c.f)); got != c.want {
			t.Errorf("Encode(Float(%v)) = %s, want %s", c.f, got, c.want)
		}
	}
}

func TestEncodeWithFloat64SkipsMinimization(t *testing.T) {
	got := encodeHex(t, Float(1.5), WithFloat64())
	if got != "fb3ff8000000000000" {
		t.Errorf("Encode(Float(1.5), WithFloat64()) = %s, want fb3ff8000000000000", got)
	}
}

func TestEncodeNaNCanonicalized(t *testing.T) {
	nan := math.NaN()
	if got, want := encodeHex(t, Float(nan)), "f97e00"; got != want {
		t.Errorf("Encode(Float(NaN)) = %s, want %s", got, want)
	}
}

func TestEncodeMapKeyOrderLengthFirst(t *testing.T) {
	// Keys "b" (len 1) and "aa" (len 2): length-first puts "b" first
	// regardless of byte content.
	m := Map([]MapEntry{
		{Key: String("aa"), Value: Int(1)},
		{Key: String("b"), Value: Int(2)},
	})
	if got, want := encodeHex(t, m), "a2616202626161"+"01"; got != want {
		t.Errorf("Encode(m) = %s, want %s", got, want)
	}
}

func TestEncodeMapKeyOrderBytewise(t *testing.T) {
	m := Map([]MapEntry{
		{Key: String("aa"), Value: Int(1)},
		{Key: String("b"), Value: Int(2)},
	})
	// Bytewise compares the whole encoded key, header byte included:
	// "b" (0x6162) sorts before "aa" (0x626161) since 0x61 < 0x62.
	got := encodeHex(t, m, WithKeyOrder(KeyOrderBytewise))
	want := "a2" + "6162" + "02" + "626161" + "01"
	if got != want {
		t.Errorf("Encode(m, Bytewise) = %s, want %s", got, want)
	}
}

func TestEncodeMapKeyOrderDeterministicRegardlessOfInputOrder(t *testing.T) {
	forward := Map([]MapEntry{{Key: String("a"), Value: Int(1)}, {Key: String("b"), Value: Int(2)}})
	backward := Map([]MapEntry{{Key: String("b"), Value: Int(2)}, {Key: String("a"), Value: Int(1)}})
	if encodeHex(t, forward) != encodeHex(t, backward) {
		t.Fatalf("map encoding depends on insertion order")
	}
}

func TestEncodeArrayCycleDetected(t *testing.T) {
	items := make([]Value, 1)
	cyc := Array(items)
	items[0] = cyc
	_, err := Encode(cyc)
	if err != ErrCircularReference {
		t.Fatalf("Encode error = %v, want ErrCircularReference", err)
	}
}

func TestEncodeMapCycleDetected(t *testing.T) {
	entries := make([]MapEntry, 1)
	cyc := Map(entries)
	entries[0] = MapEntry{Key: String("self"), Value: cyc}
	_, err := Encode(cyc)
	if err != ErrCircularReference {
		t.Fatalf("Encode error = %v, want ErrCircularReference", err)
	}
}

func TestEncodeSharedNonCyclicArrayOK(t *testing.T) {
	// Two independent references to the same (non-cyclic) slice must
	// not be mistaken for a cycle: the ancestor check is path-based,
	// not identity-of-all-visits-based.
	shared := Array([]Value{Int(1), Int(2)})
	top := Array([]Value{shared, shared})
	if _, err := Encode(top); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestEncodeMaxDepthExceeded(t *testing.T) {
	v := Int(0)
	for i := 0; i < 5; i++ {
		v = Array([]Value{v})
	}
	if _, err := Encode(v, WithMaxDepth(2)); err != ErrMaxDepthExceeded {
		t.Fatalf("Encode error = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestEncodeTag(t *testing.T) {
	v := Tag(0, String("2013-03-21T20:04:00Z"))
	got := encodeHex(t, v)
	want := "c0" + "74" + hex.EncodeToString([]byte("2013-03-21T20:04:00Z"))
	if got != want {
		t.Errorf("Encode(Tag(0, ...)) = %s, want %s", got, want)
	}
}

func TestEncodeStringAndBytes(t *testing.T) {
	if got, want := encodeHex(t, String("IETF")), "6449455446"; got != want {
		t.Errorf("Encode(String) = %s, want %s", got, want)
	}
	if got, want := encodeHex(t, Bytes([]byte{1, 2, 3, 4})), "4401020304"; got != want {
		t.Errorf("Encode(Bytes) = %s, want %s", got, want)
	}
}

func TestEncodeBoolNullUndefined(t *testing.T) {
	if got, want := encodeHex(t, Bool(false)), "f4"; got != want {
		t.Errorf("Encode(false) = %s, want %s", got, want)
	}
	if got, want := encodeHex(t, Bool(true)), "f5"; got != want {
		t.Errorf("Encode(true) = %s, want %s", got, want)
	}
	if got, want := encodeHex(t, Null()), "f6"; got != want {
		t.Errorf("Encode(null) = %s, want %s", got, want)
	}
	if got, want := encodeHex(t, Undefined()), "f7"; got != want {
		t.Errorf("Encode(undefined) = %s, want %s", got, want)
	}
}
