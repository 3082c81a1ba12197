package cbor

// jumpEntry is one row of the decode jump table (§4.3): the major type
// of the initial byte, how many argument bytes follow it (0 for an
// inline 0-23 value, 1/2/4/8 for the uint8/16/32/64 forms), whether
// additional-info 31 marks an indefinite-length item or a break, and
// whether the byte is reserved (additional info 28-30, or 31 on majors
// 0, 1 and 6). Unassigned simple values are not marked here.
type jumpEntry struct {
	major      uint8
	argBytes   uint8
	indefinite bool
	isBreak    bool
	reserved   bool
}

const (
	major0Uint   = 0
	major1Neg    = 1
	major2Bytes  = 2
	major3Text   = 3
	major4Array  = 4
	major5Map    = 5
	major6Tag    = 6
	major7Simple = 7
)

// jumpTable is built once, at package init, and indexed directly by the
// initial byte of a CBOR item. It is never mutated after init.
var jumpTable [256]jumpEntry

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)
		major := (b >> 5) & 0x07
		info := b & 0x1f

		e := jumpEntry{major: major}
		switch {
		case info <= 23:
			e.argBytes = 0
		case info == 24:
			e.argBytes = 1
		case info == 25:
			e.argBytes = 2
		case info == 26:
			e.argBytes = 4
		case info == 27:
			e.argBytes = 8
		case info >= 28 && info <= 30:
			e.reserved = true
		case info == 31:
			switch major {
			case major2Bytes, major3Text, major4Array, major5Map:
				e.indefinite = true
			case major7Simple:
				e.isBreak = true
			default:
				// Majors 0, 1, 6 have no indefinite-length or break form.
				e.reserved = true
			}
		}
		jumpTable[i] = e
	}
}
