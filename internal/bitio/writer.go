// Package bitio provides bit-granular writing and reading over byte
// buffers, most-significant bit first.
//
// The packed encoding rules address output at bit granularity: a boolean
// is one bit, a constrained integer occupies exactly its computed width,
// and nothing is byte-aligned unless the aligned variant says so. Writer
// accumulates bits in a 64-bit word and flushes whole words to a pooled
// byte buffer; Reader walks the input bit by bit and fails reads past its
// end without consuming anything.
package bitio

import (
	"errors"
	"fmt"

	"github.com/arloliu/asnpack/endian"
	"github.com/arloliu/asnpack/internal/pool"
)

// ErrShortInput is returned when a read would pass the end of the
// reader's bit span.
var ErrShortInput = errors.New("bitio: input exhausted")

// Writer writes bits most-significant first into a pooled byte buffer.
//
// Bits accumulate in a 64-bit word and are flushed to the buffer in whole
// words; Bytes finalizes the tail by zero-padding the last partial byte.
type Writer struct {
	bitBuf   uint64
	bitCount int
	bits     int
	engine   endian.EndianEngine
	buf      *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{
		engine: endian.GetBigEndianEngine(),
		buf:    pool.GetMessageBuffer(),
	}
}

// WriteBool writes a single bit.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
}

// WriteBits writes the low n bits of v, most-significant first.
// n must be in [0, 64]; any higher bits of v are ignored.
func (w *Writer) WriteBits(v uint64, n int) {
	if n < 0 || n > 64 {
		panic(fmt.Sprintf("bitio: bit count %d out of range [0,64]", n))
	}
	if n == 0 {
		return
	}
	if n < 64 {
		v &= (1 << n) - 1
	}
	w.bits += n

	free := 64 - w.bitCount
	if n <= free {
		if n == 64 {
			w.bitBuf = v
		} else {
			w.bitBuf = w.bitBuf<<n | v
		}
		w.bitCount += n
		if w.bitCount == 64 {
			w.flush()
		}

		return
	}

	// Fill the current word, flush, and keep the remainder.
	rem := n - free
	w.bitBuf = w.bitBuf<<free | v>>rem
	w.bitCount = 64
	w.flush()
	w.bitBuf = v & ((1 << rem) - 1)
	w.bitCount = rem
}

// WriteBytes writes p at the current bit position. The bytes land
// byte-aligned only if the writer is currently aligned.
func (w *Writer) WriteBytes(p []byte) {
	for len(p) >= 8 {
		w.WriteBits(w.engine.Uint64(p), 64)
		p = p[8:]
	}
	for _, b := range p {
		w.WriteBits(uint64(b), 8)
	}
}

// Align pads with zero bits up to the next byte boundary and returns the
// number of padding bits written.
func (w *Writer) Align() int {
	pad := (8 - w.bits%8) % 8
	w.WriteBits(0, pad)

	return pad
}

// Aligned reports whether the writer sits on a byte boundary.
func (w *Writer) Aligned() bool {
	return w.bits%8 == 0
}

// BitLen returns the total number of bits written.
func (w *Writer) BitLen() int {
	return w.bits
}

// Bytes flushes any partial byte (zero-padded) and returns the encoded
// bytes. The returned slice references the pooled buffer: copy it before
// calling Close, and do not write further bits afterwards.
func (w *Writer) Bytes() []byte {
	if w.bitCount > 0 {
		n := (w.bitCount + 7) / 8
		var tmp [8]byte
		w.engine.PutUint64(tmp[:], w.bitBuf<<(64-w.bitCount))
		w.buf.MustWrite(tmp[:n])
		w.bitBuf = 0
		w.bitCount = 0
	}

	return w.buf.Bytes()
}

// Close returns the underlying buffer to the pool. The writer must not be
// used afterwards.
func (w *Writer) Close() {
	if w.buf != nil {
		pool.PutMessageBuffer(w.buf)
		w.buf = nil
	}
}

func (w *Writer) flush() {
	w.buf.B = w.engine.AppendUint64(w.buf.B, w.bitBuf)
	w.bitBuf = 0
	w.bitCount = 0
}
