package cbor

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"time"
)

// Common IANA-registered tag numbers (§10.6). DefaultTagSet exposes
// decoders for them as an explicitly-opt-in TagSet rather than baking
// them into the default decode path, consistent with §4.7's closed
// classifier.
const (
	TagDateTimeString    = 0
	TagEpochDateTime     = 1
	TagPosBignum         = 2
	TagNegBignum         = 3
	TagDecimalFraction   = 4
	TagBigfloat          = 5
	TagExpectedBase64URL = 21
	TagExpectedBase64    = 22
	TagExpectedBase16    = 23
	TagEmbeddedCBOR      = 24
	TagURI               = 32
	TagBase64URLString   = 33
	TagBase64String      = 34
	TagRegexp            = 35
	TagMIME              = 36
	TagSelfDescribeCBOR  = 55799
)

// DefaultTagSet returns a TagSet covering the IANA-registered tags
// listed above.
// Each decoder either converts the inner value within the closed
// Value domain (bignums become KindBigInt) or validates it in place
// and returns it unchanged; none introduce a new Value kind, since
// the domain is closed (§9's Value-polymorphism design note).
func DefaultTagSet() *TagSet {
	ts := NewTagSet()
	ts.Register(TagDateTimeString, decodeDateTimeString)
	ts.Register(TagEpochDateTime, decodeEpochDateTime)
	ts.Register(TagPosBignum, decodePosBignum)
	ts.Register(TagNegBignum, decodeNegBignum)
	ts.Register(TagDecimalFraction, decodeDecimalFraction)
	ts.Register(TagBigfloat, decodeDecimalFraction) // same [exponent, mantissa] shape
	ts.Register(TagExpectedBase64URL, passThroughBytes)
	ts.Register(TagExpectedBase64, passThroughBytes)
	ts.Register(TagExpectedBase16, passThroughBytes)
	ts.Register(TagEmbeddedCBOR, decodeEmbeddedCBOR)
	ts.Register(TagURI, decodeURI)
	ts.Register(TagBase64URLString, decodeBase64URLString)
	ts.Register(TagBase64String, decodeBase64String)
	ts.Register(TagRegexp, decodeRegexpString)
	ts.Register(TagMIME, passThroughString)
	ts.Register(TagSelfDescribeCBOR, passThrough)
	return ts
}

func passThrough(v Value) (Value, error) { return v, nil }

func passThroughBytes(v Value) (Value, error) {
	if _, ok := v.Bytes(); !ok {
		return Value{}, fmt.Errorf("cbor: tag requires a byte string, got %s", v.Kind())
	}
	return v, nil
}

func passThroughString(v Value) (Value, error) {
	if _, ok := v.String(); !ok {
		return Value{}, fmt.Errorf("cbor: tag requires a text string, got %s", v.Kind())
	}
	return v, nil
}

func decodeDateTimeString(v Value) (Value, error) {
	s, ok := v.String()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 0 requires a text string, got %s", v.Kind())
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return Value{}, fmt.Errorf("cbor: tag 0 date/time string: %w", err)
	}
	return v, nil
}

func decodeEpochDateTime(v Value) (Value, error) {
	if v.IsInteger() {
		return v, nil
	}
	if _, ok := v.Float64(); ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("cbor: tag 1 requires a number, got %s", v.Kind())
}

func decodePosBignum(v Value) (Value, error) {
	bs, ok := v.Bytes()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 2 requires a byte string, got %s", v.Kind())
	}
	return BigInt(new(big.Int).SetBytes(bs)), nil
}

func decodeNegBignum(v Value) (Value, error) {
	bs, ok := v.Bytes()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 3 requires a byte string, got %s", v.Kind())
	}
	n := new(big.Int).SetBytes(bs)
	z := new(big.Int).Neg(n)
	z.Sub(z, big.NewInt(1))
	return BigInt(z), nil
}

func decodeDecimalFraction(v Value) (Value, error) {
	items, ok := v.Array()
	if !ok || len(items) != 2 {
		return Value{}, fmt.Errorf("cbor: decimal fraction/bigfloat requires a 2-element array")
	}
	if !items[0].IsInteger() {
		return Value{}, fmt.Errorf("cbor: decimal fraction/bigfloat exponent must be an integer")
	}
	if !items[1].IsInteger() {
		return Value{}, fmt.Errorf("cbor: decimal fraction/bigfloat mantissa must be an integer")
	}
	return v, nil
}

func decodeEmbeddedCBOR(v Value) (Value, error) {
	bs, ok := v.Bytes()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 24 requires a byte string, got %s", v.Kind())
	}
	if _, err := Decode(bs); err != nil {
		return Value{}, fmt.Errorf("cbor: tag 24 embedded document: %w", err)
	}
	return v, nil
}

func decodeURI(v Value) (Value, error) {
	s, ok := v.String()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 32 requires a text string, got %s", v.Kind())
	}
	if _, err := url.Parse(s); err != nil {
		return Value{}, fmt.Errorf("cbor: tag 32 uri: %w", err)
	}
	return v, nil
}

func decodeBase64URLString(v Value) (Value, error) {
	return decodeBase64Flavor(v, base64.URLEncoding)
}

func decodeBase64String(v Value) (Value, error) {
	return decodeBase64Flavor(v, base64.StdEncoding)
}

func decodeBase64Flavor(v Value, enc *base64.Encoding) (Value, error) {
	s, ok := v.String()
	if !ok {
		return Value{}, fmt.Errorf("cbor: base64 tag requires a text string, got %s", v.Kind())
	}
	if _, err := enc.DecodeString(s); err != nil {
		return Value{}, fmt.Errorf("cbor: base64 text: %w", err)
	}
	return v, nil
}

func decodeRegexpString(v Value) (Value, error) {
	s, ok := v.String()
	if !ok {
		return Value{}, fmt.Errorf("cbor: tag 35 requires a text string, got %s", v.Kind())
	}
	if _, err := regexp.Compile(s); err != nil {
		return Value{}, fmt.Errorf("cbor: tag 35 regexp: %w", err)
	}
	return v, nil
}
