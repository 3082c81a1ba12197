package cbor

import (
	"errors"
	"io"

	"github.com/philhofer/fwd"

	rt "github.com/cbordet/cbor/runtime"
)

// StreamEncoder amortizes buffer allocation across many single-item
// Encode calls against a socket or file (§6.1), built on a buffered
// fwd.Writer plus a pooled rt.ByteBuffer that holds the encode scratch
// space across calls, so a stream of same-shaped values settles into
// encoding with zero further allocation once the buffer has grown to
// the steady-state size. Each Encode call still writes exactly one
// top-level item.
type StreamEncoder struct {
	w   *fwd.Writer
	enc *Encoder
	bb  *rt.ByteBuffer
}

// NewStreamEncoder wraps w in a buffered writer and an Encoder
// configured by opts.
func NewStreamEncoder(w io.Writer, opts ...EncodeOption) *StreamEncoder {
	return &StreamEncoder{w: fwd.NewWriter(w), enc: NewEncoder(opts...), bb: rt.GetByteBuffer()}
}

// Encode writes v's canonical encoding and flushes the buffer.
func (se *StreamEncoder) Encode(v Value) error {
	se.bb.Reset()
	buf, err := se.enc.EncodeInto(se.bb.Bytes(), v)
	if err != nil {
		return err
	}
	se.bb.Adopt(buf)
	if _, err := se.w.Write(se.bb.Bytes()); err != nil {
		return err
	}
	return se.w.Flush()
}

// Flush forces any buffered bytes to the underlying writer.
func (se *StreamEncoder) Flush() error { return se.w.Flush() }

// Close returns the encoder's pooled scratch buffer. Callers that are
// done with a StreamEncoder should call this so the buffer can be
// reused by the next NewStreamEncoder instead of collected.
func (se *StreamEncoder) Close() error {
	rt.PutByteBuffer(se.bb)
	return nil
}

// StreamDecoder amortizes buffer allocation across many single-item
// Decode calls against a socket or file (§6.1), built on a buffered
// fwd.Reader. Each Decode call reads exactly one top-level item,
// using RFC 8949 well-formedness validation to find that item's
// boundary without a bespoke incremental parser.
type StreamDecoder struct {
	r   *fwd.Reader
	dec *Decoder
}

// NewStreamDecoder wraps r in a buffered reader and a Decoder
// configured by opts.
func NewStreamDecoder(r io.Reader, opts ...DecodeOption) *StreamDecoder {
	return &StreamDecoder{r: fwd.NewReader(r), dec: NewDecoder(opts...)}
}

// Decode reads and reconstructs the next top-level Value from the
// stream.
func (sd *StreamDecoder) Decode() (Value, error) {
	item, err := sd.readItem()
	if err != nil {
		return Value{}, err
	}
	return sd.dec.Decode(item)
}

// readItem peeks successively larger windows of the stream until
// RFC 8949's well-formedness check succeeds on a prefix of that
// window, then consumes exactly that many bytes. Growing rather than
// reading one byte at a time lets well-formedness checking (which
// needs to see a whole item, e.g. a long array, before it can agree
// on where the item ends) amortize over one buffered read instead of
// many tiny ones.
func (sd *StreamDecoder) readItem() ([]byte, error) {
	const initialPeek = 64
	size := initialPeek
	for {
		peeked, perr := sd.r.Peek(size)
		if perr != nil && !errors.Is(perr, io.EOF) {
			return nil, perr
		}
		if len(peeked) == 0 {
			return nil, io.EOF
		}
		rest, verr := rt.ValidateWellFormedBytes(peeked)
		if verr == nil {
			itemLen := len(peeked) - len(rest)
			return sd.r.Next(itemLen)
		}
		if errors.Is(verr, rt.ErrShortBytes) {
			if errors.Is(perr, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			size *= 2
			continue
		}
		return nil, verr
	}
}
