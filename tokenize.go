package cbor

import (
	"math"

	rt "github.com/cbordet/cbor/runtime"
)

// tokenizeOpts carries the subset of Decoder options that affect how a
// single token is parsed off the wire, independent of how the caller
// (Decode's value builder, or the public Tokenize) assembles it.
type tokenizeOpts struct {
	allowIndefinite bool
	allowUndefined  bool
	strict          bool
}

// minimalArgBytes returns the smallest legal argument width for the
// raw wire argument v: 0 for an inline 0-23 value, else 1/2/4/8.
func minimalArgBytes(v uint64) uint8 {
	switch {
	case v <= 23:
		return 0
	case v <= math.MaxUint8:
		return 1
	case v <= math.MaxUint16:
		return 2
	case v <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// translateReadErr maps a byte-level runtime error, as returned by the
// rt.ReadXxxBytes family, to this package's own §7 error sentinel, so
// errors.Is(err, cbor.ErrXxx) and errKind classify it correctly instead
// of seeing the runtime package's distinct error value.
func translateReadErr(err error) error {
	switch err {
	case rt.ErrShortBytes:
		return ErrUnexpectedEOF
	case rt.ErrInvalidUTF8:
		return ErrInvalidUTF8
	default:
		return err
	}
}

// translateChunkErr is translateReadErr plus the §4.5 case specific to
// major 2/3: an indefinite-length item whose chunks don't all share its
// major type surfaces from rt.ReadBytesBytes/rt.ReadStringBytes as a
// plain rt.InvalidPrefixError, which has no cbor.ErrXxx counterpart on
// its own.
func translateChunkErr(err error) error {
	if _, ok := err.(rt.InvalidPrefixError); ok {
		return ErrIndefiniteChunkTypeMismatch
	}
	return translateReadErr(err)
}

// bytesToToken parses exactly one token's header off b (§4.2's
// "single-token parser"), dispatching on the jump table entry for the
// lead byte. For major 2/3 with an indefinite-length marker, it
// delegates to runtime's chunk-concatenating readers directly, since
// those already validate that every chunk shares the parent's major
// type; for major 4/5/nested tags the caller is responsible for
// recursing into children using the returned Uint (count) or
// Indefinite flag.
func bytesToToken(b []byte, o tokenizeOpts) (Token, []byte, error) {
	if len(b) == 0 {
		return Token{}, b, ErrUnexpectedEOF
	}
	je := jumpTable[b[0]]
	if je.reserved {
		return Token{}, b, ErrReservedAdditionalInfo
	}
	if je.isBreak {
		return Token{Type: TokBreak}, b[1:], nil
	}
	if je.indefinite && !o.allowIndefinite {
		return Token{}, b, ErrIndefiniteNotAllowed
	}

	switch je.major {
	case major0Uint:
		u, rest, err := rt.ReadUint64Bytes(b)
		if err != nil {
			return Token{}, b, translateReadErr(err)
		}
		if o.strict && je.argBytes != minimalArgBytes(u) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokUint, Uint: u}, rest, nil

	case major1Neg:
		n, rest, err := rt.ReadNegIntArgBytes(b)
		if err != nil {
			return Token{}, b, translateReadErr(err)
		}
		if o.strict && je.argBytes != minimalArgBytes(n) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokNegInt, Uint: n}, rest, nil

	case major2Bytes:
		bs, rest, err := rt.ReadBytesBytes(b, nil)
		if err != nil {
			return Token{}, b, translateChunkErr(err)
		}
		if o.strict && !je.indefinite && je.argBytes != minimalArgBytes(uint64(len(bs))) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokBytes, Bytes: bs}, rest, nil

	case major3Text:
		s, rest, err := rt.ReadStringBytes(b)
		if err != nil {
			return Token{}, b, translateChunkErr(err)
		}
		if o.strict && !je.indefinite && je.argBytes != minimalArgBytes(uint64(len(s))) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokString, Str: s}, rest, nil

	case major4Array:
		sz, indef, rest, err := rt.ReadArrayStartBytes(b)
		if err != nil {
			return Token{}, b, translateReadErr(err)
		}
		if o.strict && !indef && je.argBytes != minimalArgBytes(uint64(sz)) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokArray, Uint: uint64(sz), Indefinite: indef}, rest, nil

	case major5Map:
		sz, indef, rest, err := rt.ReadMapStartBytes(b)
		if err != nil {
			return Token{}, b, translateReadErr(err)
		}
		if o.strict && !indef && je.argBytes != minimalArgBytes(uint64(sz)) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokMap, Uint: uint64(sz), Indefinite: indef}, rest, nil

	case major6Tag:
		tag, rest, err := rt.ReadTagBytes(b)
		if err != nil {
			return Token{}, b, translateReadErr(err)
		}
		if o.strict && je.argBytes != minimalArgBytes(tag) {
			return Token{}, b, ErrNonCanonicalEncoding
		}
		return Token{Type: TokTag, Uint: tag}, rest, nil

	case major7Simple:
		info := b[0] & 0x1f
		switch info {
		case 20:
			return Token{Type: TokFalse}, b[1:], nil
		case 21:
			return Token{Type: TokTrue}, b[1:], nil
		case 22:
			return Token{Type: TokNull}, b[1:], nil
		case 23:
			if !o.allowUndefined {
				return Token{}, b, ErrUndefinedNotAllowed
			}
			return Token{Type: TokUndefined}, b[1:], nil
		case 24:
			return Token{}, b, ErrUnassignedSimpleValue
		case 25:
			f, rest, err := rt.ReadFloat16Bytes(b)
			if err != nil {
				return Token{}, b, translateReadErr(err)
			}
			return Token{Type: TokFloat, Float: float64(f)}, rest, nil
		case 26:
			f, rest, err := rt.ReadFloat32Bytes(b)
			if err != nil {
				return Token{}, b, translateReadErr(err)
			}
			return Token{Type: TokFloat, Float: float64(f)}, rest, nil
		case 27:
			f, rest, err := rt.ReadFloat64Bytes(b)
			if err != nil {
				return Token{}, b, translateReadErr(err)
			}
			return Token{Type: TokFloat, Float: f}, rest, nil
		default:
			return Token{}, b, ErrUnassignedSimpleValue
		}

	default:
		return Token{}, b, ErrUnsupportedType
	}
}

// Tokenize parses exactly one top-level CBOR item into its flat,
// preorder token stream (§6.1's lower-level pair). Containers are
// represented by a header token (carrying the child count, or
// Indefinite) followed immediately by that many children; a tag
// token is followed by exactly one child, its inner item.
func Tokenize(b []byte) ([]Token, []byte, error) {
	var out []Token
	rest, err := tokenizeInto(b, tokenizeOpts{allowIndefinite: true, allowUndefined: true}, 0, &out)
	if err != nil {
		return nil, b, err
	}
	return out, rest, nil
}

func tokenizeInto(b []byte, o tokenizeOpts, depth int, out *[]Token) ([]byte, error) {
	if depth > 64 {
		return b, ErrMaxDepthExceeded
	}
	tok, rest, err := bytesToToken(b, o)
	if err != nil {
		return b, err
	}
	*out = append(*out, tok)

	switch tok.Type {
	case TokArray:
		if tok.Indefinite {
			for {
				if len(rest) > 0 && jumpTable[rest[0]].isBreak {
					*out = append(*out, Token{Type: TokBreak})
					return rest[1:], nil
				}
				rest, err = tokenizeInto(rest, o, depth+1, out)
				if err != nil {
					return b, err
				}
			}
		}
		for i := uint64(0); i < tok.Uint; i++ {
			rest, err = tokenizeInto(rest, o, depth+1, out)
			if err != nil {
				return b, err
			}
		}
		return rest, nil

	case TokMap:
		if tok.Indefinite {
			for {
				if len(rest) > 0 && jumpTable[rest[0]].isBreak {
					*out = append(*out, Token{Type: TokBreak})
					return rest[1:], nil
				}
				rest, err = tokenizeInto(rest, o, depth+1, out)
				if err != nil {
					return b, err
				}
				rest, err = tokenizeInto(rest, o, depth+1, out)
				if err != nil {
					return b, err
				}
			}
		}
		for i := uint64(0); i < tok.Uint*2; i++ {
			rest, err = tokenizeInto(rest, o, depth+1, out)
			if err != nil {
				return b, err
			}
		}
		return rest, nil

	case TokTag:
		return tokenizeInto(rest, o, depth+1, out)

	default:
		return rest, nil
	}
}

// Serialize renders a flat token stream back to bytes (§6.1's
// lower-level pair). It always writes definite lengths and smallest-form
// arguments and floats, so it rejects indefinite-length and break
// tokens; Serialize(Tokenize(b)) reproduces b only when b is already in
// that form.
func Serialize(tokens []Token) ([]byte, error) {
	return serializeTokensInto(nil, tokens)
}

// serializeTokensInto appends the single item described by tokens to
// b, failing unless tokens is consumed exactly.
func serializeTokensInto(b []byte, tokens []Token) ([]byte, error) {
	nb, next, err := appendToken(b, tokens, 0)
	if err != nil {
		return nil, err
	}
	if next != len(tokens) {
		return nil, ErrUnsupportedType
	}
	return nb, nil
}

func appendToken(b []byte, tokens []Token, idx int) ([]byte, int, error) {
	if idx >= len(tokens) {
		return nil, idx, ErrUnexpectedEOF
	}
	tok := tokens[idx]
	switch tok.Type {
	case TokUint:
		return rt.AppendUint64(b, tok.Uint), idx + 1, nil
	case TokNegInt:
		return rt.AppendNegIntArg(b, tok.Uint), idx + 1, nil
	case TokBytes:
		return rt.AppendBytes(b, tok.Bytes), idx + 1, nil
	case TokString:
		return rt.AppendString(b, tok.Str), idx + 1, nil
	case TokFloat:
		return rt.AppendFloatCanonical(b, tok.Float), idx + 1, nil
	case TokFalse:
		return rt.AppendBool(b, false), idx + 1, nil
	case TokTrue:
		return rt.AppendBool(b, true), idx + 1, nil
	case TokNull:
		return rt.AppendNil(b), idx + 1, nil
	case TokUndefined:
		return rt.AppendUndefined(b), idx + 1, nil
	case TokArray:
		if tok.Indefinite {
			return nil, idx, ErrIndefiniteNotAllowed
		}
		b = rt.AppendArrayHeader(b, uint32(tok.Uint))
		idx++
		var err error
		for i := uint64(0); i < tok.Uint; i++ {
			b, idx, err = appendToken(b, tokens, idx)
			if err != nil {
				return nil, idx, err
			}
		}
		return b, idx, nil
	case TokMap:
		if tok.Indefinite {
			return nil, idx, ErrIndefiniteNotAllowed
		}
		b = rt.AppendMapHeader(b, uint32(tok.Uint))
		idx++
		var err error
		for i := uint64(0); i < tok.Uint*2; i++ {
			b, idx, err = appendToken(b, tokens, idx)
			if err != nil {
				return nil, idx, err
			}
		}
		return b, idx, nil
	case TokTag:
		b = rt.AppendTag(b, tok.Uint)
		return appendToken(b, tokens, idx+1)
	case TokBreak:
		return nil, idx, ErrIndefiniteNotAllowed
	default:
		return nil, idx, ErrUnsupportedType
	}
}
