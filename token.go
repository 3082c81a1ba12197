package cbor

import "math/big"

// TokenType is the discriminant of the neutral Token union that
// bridges CBOR's binary layout and the logical Value domain (§3.2 of
// the distilled spec — "the Token model").
type TokenType uint8

const (
	TokUint TokenType = iota
	TokNegInt
	TokBytes
	TokString
	TokArray
	TokMap
	TokTag
	TokFloat
	TokFalse
	TokTrue
	TokNull
	TokUndefined
	TokBreak
)

func (t TokenType) String() string {
	switch t {
	case TokUint:
		return "uint"
	case TokNegInt:
		return "negint"
	case TokBytes:
		return "bytes"
	case TokString:
		return "string"
	case TokArray:
		return "array"
	case TokMap:
		return "map"
	case TokTag:
		return "tag"
	case TokFloat:
		return "float"
	case TokFalse:
		return "false"
	case TokTrue:
		return "true"
	case TokNull:
		return "null"
	case TokUndefined:
		return "undefined"
	case TokBreak:
		return "break"
	default:
		return "<invalid>"
	}
}

// Token is the codec's neutral intermediate representation. Array and
// map tokens carry their element/entry count in Uint; tag tokens
// carry the tag number in Uint; uint/negint tokens carry their raw
// argument in Uint (for TokNegInt the logical value is -1-argument,
// which the Decoder turns into a KindBigInt when it falls below
// math.MinInt64). Big is not set by Tokenize and not read by
// Serialize.
type Token struct {
	Type       TokenType
	Uint       uint64
	Big        *big.Int
	Float      float64
	Bytes      []byte
	Str        string
	Indefinite bool
}
