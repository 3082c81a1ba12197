package cbor

import "testing"

func TestJumpTableArgBytes(t *testing.T) {
	cases := []struct {
		lead     byte
		major    uint8
		argBytes uint8
	}{
		{0x00, major0Uint, 0},  // uint 0, inline
		{0x17, major0Uint, 0}, // uint 23, inline
		{0x18, major0Uint, 1}, // uint8 follows
		{0x19, major0Uint, 2}, // uint16 follows
		{0x1a, major0Uint, 4}, // uint32 follows
		{0x1b, major0Uint, 8}, // uint64 follows
		{0x20, major1Neg, 0},  // -1, inline
		{0x38, major1Neg, 1},
		{0x82, major4Array, 0}, // array of 2, inline count
		{0xa2, major5Map, 0},   // map of 2, inline count
	}
	for _, c := range cases {
		e := jumpTable[c.lead]
		if e.major != c.major {
			t.Errorf("jumpTable[%#x].major = %d, want %d", c.lead, e.major, c.major)
		}
		if e.argBytes != c.argBytes {
			t.Errorf("jumpTable[%#x].argBytes = %d, want %d", c.lead, e.argBytes, c.argBytes)
		}
		if e.reserved || e.isBreak {
			t.Errorf("jumpTable[%#x] unexpectedly reserved/break", c.lead)
		}
	}
}

func TestJumpTableIndefiniteVsBreak(t *testing.T) {
	// Indefinite-length markers (info 31) exist for majors 2-5; break
	// (0xff, major 7 info 31) is a distinct concept and must not be
	// flagged indefinite.
	indefiniteLeads := []byte{0x5f, 0x7f, 0x9f, 0xbf}
	for _, lead := range indefiniteLeads {
		e := jumpTable[lead]
		if !e.indefinite {
			t.Errorf("jumpTable[%#x].indefinite = false, want true", lead)
		}
		if e.isBreak {
			t.Errorf("jumpTable[%#x].isBreak = true, want false", lead)
		}
	}

	e := jumpTable[0xff]
	if !e.isBreak {
		t.Fatalf("jumpTable[0xff].isBreak = false, want true")
	}
	if e.indefinite {
		t.Fatalf("jumpTable[0xff].indefinite = true, want false")
	}
}

func TestJumpTableReserved(t *testing.T) {
	// Additional info 28-30 is reserved for every major type.
	for _, major := range []uint8{0, 1, 2, 3, 4, 5, 6, 7} {
		for _, info := range []uint8{28, 29, 30} {
			lead := major<<5 | info
			e := jumpTable[lead]
			if !e.reserved {
				t.Errorf("jumpTable[%#x] (major %d info %d) not marked reserved", lead, major, info)
			}
		}
	}
}

func TestJumpTableMajor6And0At31Reserved(t *testing.T) {
	// Majors 0, 1, and 6 have no indefinite-length or break form, so
	// info 31 is reserved for them too.
	for _, major := range []uint8{0, 1, 6} {
		lead := major<<5 | 31
		e := jumpTable[lead]
		if !e.reserved {
			t.Errorf("jumpTable[%#x] not marked reserved", lead)
		}
		if e.indefinite || e.isBreak {
			t.Errorf("jumpTable[%#x] unexpectedly indefinite/break", lead)
		}
	}
}
