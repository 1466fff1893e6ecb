package bitio

import "fmt"

// Reader reads bits most-significant first from a byte slice.
//
// A Reader is a (buffer, position) cursor over fully materialized input;
// the buffer is shared and never copied. Reads past the end of the buffer
// fail with ErrShortInput without consuming anything.
type Reader struct {
	data []byte
	pos  int // absolute bit position
}

// NewReader creates a Reader over the full extent of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// ReadBits reads n bits, most-significant first, into the low bits of the
// result. n must be in [0, 64].
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		panic(fmt.Sprintf("bitio: bit count %d out of range [0,64]", n))
	}
	if r.Remaining() < n {
		return 0, ErrShortInput
	}

	var v uint64
	for n > 0 {
		b := r.data[r.pos>>3]
		avail := 8 - r.pos&7
		take := avail
		if n < take {
			take = n
		}
		chunk := uint64(b>>(avail-take)) & ((1 << take) - 1)
		v = v<<take | chunk
		r.pos += take
		n -= take
	}

	return v, nil
}

// ReadBytes reads n bytes starting at the current bit position. The bytes
// are assembled bit-wise when the position is not byte-aligned.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		panic(fmt.Sprintf("bitio: byte count %d negative", n))
	}
	if r.Remaining() < n*8 {
		return nil, ErrShortInput
	}

	out := make([]byte, n)
	if r.pos&7 == 0 {
		start := r.pos >> 3
		copy(out, r.data[start:start+n])
		r.pos += n * 8

		return out, nil
	}

	for i := range out {
		v, _ := r.ReadBits(8)
		out[i] = byte(v)
	}

	return out, nil
}

// Align skips forward to the next byte boundary. The position only ever
// sits inside the buffer, so aligning cannot overrun it.
func (r *Reader) Align() {
	r.pos = (r.pos + 7) &^ 7
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}
