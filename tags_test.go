package cbor

import (
	"math/big"
	"testing"
)

func TestDefaultTagSetDateTimeString(t *testing.T) {
	v := decodeHex(t, "c074323031332d30332d32315432303a30343a30305a", WithTagSet(DefaultTagSet()))
	s, ok := v.String()
	if !ok || s != "2013-03-21T20:04:00Z" {
		t.Fatalf("got %#v", v)
	}
}

func TestDefaultTagSetDateTimeStringRejectsBadFormat(t *testing.T) {
	// tag 0 wrapping a string that isn't RFC3339.
	b, err := Encode(Tag(0, String("not-a-date")))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(b, WithTagSet(DefaultTagSet())); err == nil {
		t.Fatalf("Decode succeeded on malformed tag-0 date string")
	}
}

func TestDefaultTagSetEpochDateTime(t *testing.T) {
	v := decodeHex(t, "c11a514b67b0", WithTagSet(DefaultTagSet()))
	n, ok := v.Int64()
	if !ok || n != 1363896240 {
		t.Fatalf("got %#v", v)
	}
}

func TestDefaultTagSetBignums(t *testing.T) {
	z := new(big.Int).Lsh(big.NewInt(1), 100) // well beyond uint64 range
	b, err := Encode(Tag(2, Bytes(z.Bytes())))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := Decode(b, WithTagSet(DefaultTagSet()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := v.BigInt()
	if !ok || got.Cmp(z) != 0 {
		t.Fatalf("got %v, want %v", got, z)
	}

	// Tag 3's logical value is -1-n for unsigned big-endian payload n;
	// to decode back to -z, the payload must carry n = z-1.
	n := new(big.Int).Sub(z, big.NewInt(1))
	nb, err := Encode(Tag(3, Bytes(n.Bytes())))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	nv, err := Decode(nb, WithTagSet(DefaultTagSet()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ngot, ok := nv.BigInt()
	want := new(big.Int).Neg(z)
	if !ok || ngot.Cmp(want) != 0 {
		t.Fatalf("got %v, want %v", ngot, want)
	}
}

func TestDefaultTagSetEmbeddedCBOR(t *testing.T) {
	inner, err := Encode(Array([]Value{Int(1), Int(2)}))
	if err != nil {
		t.Fatalf("Encode inner: %v", err)
	}
	outer, err := Encode(Tag(24, Bytes(inner)))
	if err != nil {
		t.Fatalf("Encode outer: %v", err)
	}
	v, err := Decode(outer, WithTagSet(DefaultTagSet()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bs, ok := v.Bytes()
	if !ok {
		t.Fatalf("got %#v, want bytes", v)
	}
	reDecoded, err := Decode(bs)
	if err != nil {
		t.Fatalf("Decode embedded: %v", err)
	}
	if !reDecoded.Equal(Array([]Value{Int(1), Int(2)})) {
		t.Fatalf("embedded mismatch: %#v", reDecoded)
	}
}

func TestDefaultTagSetEmbeddedCBORRejectsMalformed(t *testing.T) {
	b, err := Encode(Tag(24, Bytes([]byte{0xff, 0xff})))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(b, WithTagSet(DefaultTagSet())); err == nil {
		t.Fatalf("Decode succeeded with malformed embedded CBOR")
	}
}

func TestDefaultTagSetURIAndRegexpValidate(t *testing.T) {
	ok1, err := Encode(Tag(32, String("https://example.com")))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(ok1, WithTagSet(DefaultTagSet())); err != nil {
		t.Fatalf("Decode valid URI: %v", err)
	}

	badRe, err := Encode(Tag(35, String("(unterminated")))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(badRe, WithTagSet(DefaultTagSet())); err == nil {
		t.Fatalf("Decode succeeded on invalid regexp")
	}
}

func TestDefaultTagSetSelfDescribeCBORPassesThrough(t *testing.T) {
	b, err := Encode(Tag(TagSelfDescribeCBOR, Int(7)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := Decode(b, WithTagSet(DefaultTagSet()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !v.Equal(Int(7)) {
		t.Fatalf("got %#v, want Int(7)", v)
	}
}
