package cbor

// canonicalNaN16 is the single float16 bit pattern used for every NaN
// value on encode, regardless of the NaN's original payload or sign.
// 0x7e00 is the quiet NaN with a zero payload.
const canonicalNaN16 uint16 = 0x7e00
