package cbor

// TypeEncoderFunc is the type-encoder signature (§6.2): given a value
// of the logical type it was registered for, it returns either an
// ordered list of tokens to emit verbatim, or ok=false to defer to
// the default emitter.
type TypeEncoderFunc func(v Value) (tokens []Token, ok bool)

// TagDecoderFunc is the tag-decoder signature (§6.3): called after
// the tagged item's inner value has already been fully decoded.
type TagDecoderFunc func(inner Value) (Value, error)

// classifyValue resolves a Value's logical type name from the closed
// classifier set in §4.7: uint, negint, float, bigint, bool, null,
// undefined, bytes, string, array, map, tag.
func classifyValue(v Value) string {
	switch v.kind {
	case KindInt64:
		if v.i < 0 {
			return "negint"
		}
		return "uint"
	case KindUint64:
		return "uint"
	case KindBigInt:
		return "bigint"
	case KindFloat64:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	default:
		return ""
	}
}

// TagSet is an optional, explicitly-registered table of tag decoders,
// keyed by tag number (§4.7's "Tag table"). The zero value has no
// registered tags; every tag encountered then fails with
// ErrUnknownTag, matching the default §4.5 behavior.
type TagSet struct {
	decoders map[uint64]TagDecoderFunc
}

// NewTagSet returns an empty TagSet.
func NewTagSet() *TagSet {
	return &TagSet{decoders: make(map[uint64]TagDecoderFunc)}
}

// Register adds or replaces the decoder for the given tag number.
func (ts *TagSet) Register(tag uint64, fn TagDecoderFunc) *TagSet {
	if ts.decoders == nil {
		ts.decoders = make(map[uint64]TagDecoderFunc)
	}
	ts.decoders[tag] = fn
	return ts
}

func (ts *TagSet) lookup(tag uint64) (TagDecoderFunc, bool) {
	if ts == nil || ts.decoders == nil {
		return nil, false
	}
	fn, ok := ts.decoders[tag]
	return fn, ok
}
