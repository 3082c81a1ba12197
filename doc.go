// Package cbor implements a strict, deterministic CBOR codec (RFC 8949).
//
// Encode always produces exactly one canonical byte sequence for a
// given logical value: integer and length arguments use the smallest
// legal width, floats use the smallest of {f16, f32, f64} that
// round-trips exactly, and map entries are sorted by their
// encoded-key bytes. Decode reconstructs a Value from bytes and can
// optionally reject any input that isn't itself canonical.
//
// The low-level byte-slice primitives (RFC 8949 wire layout, smallest-
// form integer/length encoding, well-formedness validation) live in the
// github.com/cbordet/cbor/runtime package; this package builds the
// value graph, dispatch registries (including the DefaultTagSet
// semantic-tag decoders), and the Encoder/Decoder on top of it.
package cbor
