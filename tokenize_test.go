package cbor

import (
	"encoding/hex"
	"testing"
)

func TestTokenizeFlattensPreorder(t *testing.T) {
	// [1, [2, 3]]
	b := mustHex(t, "8201820203")
	toks, rest, err := Tokenize(b)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %d", len(rest))
	}
	wantTypes := []TokenType{TokArray, TokUint, TokArray, TokUint, TokUint}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("toks[%d].Type = %v, want %v", i, toks[i].Type, want)
		}
	}
	if toks[0].Uint != 2 {
		t.Errorf("outer array count = %d, want 2", toks[0].Uint)
	}
	if toks[2].Uint != 2 {
		t.Errorf("inner array count = %d, want 2", toks[2].Uint)
	}
}

func TestTokenizeIndefiniteArrayEmitsBreak(t *testing.T) {
	b := mustHex(t, "9f0102ff")
	toks, rest, err := Tokenize(b)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %d", len(rest))
	}
	if !toks[0].Indefinite {
		t.Fatalf("array header not marked Indefinite")
	}
	last := toks[len(toks)-1]
	if last.Type != TokBreak {
		t.Fatalf("last token = %v, want TokBreak", last.Type)
	}
}

func TestTokenizeRejectsIndefiniteWhenDisallowed(t *testing.T) {
	b := mustHex(t, "9f0102ff")
	_, _, err := bytesToToken(b, tokenizeOpts{allowIndefinite: false})
	if err != ErrIndefiniteNotAllowed {
		t.Fatalf("bytesToToken error = %v, want ErrIndefiniteNotAllowed", err)
	}
}

func TestSerializeRoundTripsTokenize(t *testing.T) {
	orig := mustHex(t, "a26161016162820203")
	toks, rest, err := Tokenize(orig)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %d", len(rest))
	}
	got, err := Serialize(toks)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if hex.EncodeToString(got) != hex.EncodeToString(orig) {
		t.Fatalf("Serialize(Tokenize(b)) = %x, want %x", got, orig)
	}
}

func TestSerializeRejectsIndefiniteToken(t *testing.T) {
	toks := []Token{{Type: TokArray, Uint: 0, Indefinite: true}}
	if _, err := Serialize(toks); err != ErrIndefiniteNotAllowed {
		t.Fatalf("Serialize error = %v, want ErrIndefiniteNotAllowed", err)
	}
}

func TestSerializeRejectsUnconsumedTokens(t *testing.T) {
	toks := []Token{{Type: TokUint, Uint: 1}, {Type: TokUint, Uint: 2}}
	if _, err := Serialize(toks); err == nil {
		t.Fatalf("Serialize succeeded with trailing unconsumed tokens")
	}
}

func TestMinimalArgBytes(t *testing.T) {
	cases := []struct {
		v    uint64
		want uint8
	}{
		{0, 0}, {23, 0}, {24, 1}, {255, 1}, {256, 2}, {65535, 2},
		{65536, 4}, {4294967295, 4}, {4294967296, 8},
	}
	for _, c := range cases {
		if got := minimalArgBytes(c.v); got != c.want {
			t.Errorf("minimalArgBytes(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}
