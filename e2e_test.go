package cbor

import (
	"encoding/hex"
	"testing"
)

// TestE2EObjectEncoding covers { this: { is: 'CBOR!', yay: true } }.
func TestE2EObjectEncoding(t *testing.T) {
	v := Map([]MapEntry{
		{Key: String("this"), Value: Map([]MapEntry{
			{Key: String("is"), Value: String("CBOR!")},
			{Key: String("yay"), Value: Bool(true)},
		})},
	})
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "a16474686973a26269736543424f522163796179f5"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Encode = %x, want %s", got, want)
	}
}

// TestE2EArrayWithUnicode covers ["a", "b", 1, "😀"].
func TestE2EArrayWithUnicode(t *testing.T) {
	v := Array([]Value{String("a"), String("b"), Int(1), String("😀")})
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "84616161620164f09f9880"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Encode = %x, want %s", got, want)
	}
}

// TestE2EStrictRejectsNonCanonicalInteger covers
// decode(hex "1b0000000000000001", { strict: true }) failing with
// NonCanonicalEncoding, and succeeding with strict: false.
func TestE2EStrictRejectsNonCanonicalInteger(t *testing.T) {
	b := mustHex(t, "1b0000000000000001")
	_, err := Decode(b, WithStrict(true))
	if !isWrapped(err, ErrNonCanonicalEncoding) {
		t.Fatalf("Decode(strict) error = %v, want ErrNonCanonicalEncoding", err)
	}
	v, err := Decode(b, WithStrict(false))
	if err != nil {
		t.Fatalf("Decode(non-strict): %v", err)
	}
	if !v.Equal(Int(1)) {
		t.Fatalf("Decode(non-strict) = %#v, want Int(1)", v)
	}
}

// TestE2EMapKeyOrderIndependence covers encode({ b: 1, a: 2 }) equaling
// encode({ a: 2, b: 1 }), both beginning a2 61 61 02 61 62 01.
func TestE2EMapKeyOrderIndependence(t *testing.T) {
	ba := Map([]MapEntry{{Key: String("b"), Value: Int(1)}, {Key: String("a"), Value: Int(2)}})
	ab := Map([]MapEntry{{Key: String("a"), Value: Int(2)}, {Key: String("b"), Value: Int(1)}})

	gotBA, err := Encode(ba)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	gotAB, err := Encode(ab)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if hex.EncodeToString(gotBA) != hex.EncodeToString(gotAB) {
		t.Fatalf("encodings differ by input order: %x vs %x", gotBA, gotAB)
	}
	want := "a2" + "6161" + "02" + "6162" + "01"
	if hex.EncodeToString(gotBA) != want {
		t.Fatalf("Encode = %x, want %s", gotBA, want)
	}
}

// TestE2EIndefiniteDisallowed covers decode(hex "9fff", { allowIndefinite:
// false }) failing with IndefiniteNotAllowed, and succeeding to an empty
// list with allowIndefinite: true.
func TestE2EIndefiniteDisallowed(t *testing.T) {
	b := mustHex(t, "9fff")
	_, err := Decode(b, WithAllowIndefinite(false))
	if !isWrapped(err, ErrIndefiniteNotAllowed) {
		t.Fatalf("Decode error = %v, want ErrIndefiniteNotAllowed", err)
	}
	v, err := Decode(b, WithAllowIndefinite(true))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	items, ok := v.Array()
	if !ok || len(items) != 0 {
		t.Fatalf("Decode = %#v, want empty array", v)
	}
}

// TestE2ECircularReferenceRejected covers a cycle A -> B -> A failing
// with CircularReference.
func TestE2ECircularReferenceRejected(t *testing.T) {
	a := make([]Value, 1)
	b := make([]Value, 1)
	b[0] = Array(a) // B -> A
	a[0] = Array(b) // A -> B
	root := Array(a)

	_, err := Encode(root)
	if err != ErrCircularReference {
		t.Fatalf("Encode error = %v, want ErrCircularReference", err)
	}
}
