package cbor

import "testing"

func TestCompareKeysLengthFirst(t *testing.T) {
	cases := []struct {
		a, b []byte
		want int
	}{
		{[]byte{0x61, 'a'}, []byte{0x62, 'a', 'a'}, -1}, // "a" (len 1) < "aa" (len 2)
		{[]byte{0x61, 'b'}, []byte{0x61, 'a'}, 1},
		{[]byte{0x61, 'a'}, []byte{0x61, 'a'}, 0},
	}
	for _, c := range cases {
		if got := compareKeys(KeyOrderLengthFirst, c.a, c.b); sign(got) != sign(c.want) {
			t.Errorf("compareKeys(LengthFirst, %v, %v) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareKeysBytewise(t *testing.T) {
	// "b" (0x6162) sorts before "aa" (0x626161) bytewise because the
	// first bytes already differ: 0x61 < 0x62.
	short := []byte{0x61, 'b'}
	long := []byte{0x62, 'a', 'a'}
	if got := compareKeys(KeyOrderBytewise, short, long); got >= 0 {
		t.Fatalf("compareKeys(Bytewise, %v, %v) = %d, want <0", short, long, got)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
