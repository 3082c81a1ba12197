package cbor

import (
	"bytes"
	"io"
	"testing"
)

func TestStreamRoundTripsMultipleItems(t *testing.T) {
	var buf bytes.Buffer
	enc := NewStreamEncoder(&buf)
	items := []Value{Int(1), String("two"), Array([]Value{Int(3), Int(4)})}
	for _, v := range items {
		if err := enc.Encode(v); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	dec := NewStreamDecoder(&buf)
	for i, want := range items {
		got, err := dec.Decode()
		if err != nil {
			t.Fatalf("Decode item %d: %v", i, err)
		}
		if !got.Equal(want) {
			t.Errorf("item %d: got %#v, want %#v", i, got, want)
		}
	}
	if _, err := dec.Decode(); err != io.EOF {
		t.Fatalf("final Decode error = %v, want io.EOF", err)
	}
}

func TestStreamDecoderTruncatedStreamIsUnexpectedEOF(t *testing.T) {
	// A map header claiming 1 entry but with no bytes following.
	dec := NewStreamDecoder(bytes.NewReader([]byte{0xa1}))
	if _, err := dec.Decode(); err != io.ErrUnexpectedEOF {
		t.Fatalf("Decode error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStreamEncoderReusesPooledBuffer(t *testing.T) {
	var buf bytes.Buffer
	enc := NewStreamEncoder(&buf)
	defer enc.Close()

	// A large value forces the pooled buffer to grow past its initial
	// capacity; a second, smaller value on the same encoder must still
	// round-trip correctly afterward.
	big := make([]Value, 2000)
	for i := range big {
		big[i] = Int(int64(i))
	}
	if err := enc.Encode(Array(big)); err != nil {
		t.Fatalf("Encode large value: %v", err)
	}
	if err := enc.Encode(Int(42)); err != nil {
		t.Fatalf("Encode small value: %v", err)
	}

	dec := NewStreamDecoder(&buf)
	first, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode first: %v", err)
	}
	if !first.Equal(Array(big)) {
		t.Fatalf("first item mismatch")
	}
	second, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode second: %v", err)
	}
	if !second.Equal(Int(42)) {
		t.Fatalf("second item mismatch: %#v", second)
	}
}
