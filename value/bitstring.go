// Package value provides the leaf value types of the ASN.1 type universe
// that have no direct Go native: bit strings, object identifiers, open
// (undecoded) values, the tag-ordered unknown-field preservation map, and
// the two calendar-time text forms.
//
// Everything in this package is a plain value: created fresh per decode or
// encode call, owned by that call, and never mutated after the call
// returns.
package value

import (
	"fmt"
	"strings"
)

// BitString is an ordered sequence of bits. Unlike []byte it has bit
// granularity: its length need not be a multiple of eight, and trailing
// bits of the final byte beyond Len are always zero.
type BitString struct {
	data []byte
	len  int
}

// NewBitString creates a bit string from data truncated to length bits.
// Panics if length exceeds the bits available in data or is negative.
func NewBitString(data []byte, length int) BitString {
	if length < 0 || length > len(data)*8 {
		panic(fmt.Sprintf("value: bit string length %d out of range for %d bytes", length, len(data)))
	}

	bs := BitString{data: make([]byte, (length+7)/8), len: length}
	copy(bs.data, data)
	bs.clearTail()

	return bs
}

// BitStringFromBools creates a bit string from individual bit values.
func BitStringFromBools(bits []bool) BitString {
	bs := BitString{data: make([]byte, (len(bits)+7)/8), len: len(bits)}
	for i, b := range bits {
		if b {
			bs.data[i/8] |= 0x80 >> (i % 8)
		}
	}

	return bs
}

// clearTail zeroes the unused bits of the final byte so that Equal can
// compare byte-wise.
func (b *BitString) clearTail() {
	if rem := b.len % 8; rem != 0 && len(b.data) > 0 {
		b.data[len(b.data)-1] &= 0xFF << (8 - rem)
	}
}

// Len returns the number of bits in the string.
func (b BitString) Len() int {
	return b.len
}

// Bit returns the bit at position i, most-significant first within each
// byte. Panics if i is out of range.
func (b BitString) Bit(i int) bool {
	if i < 0 || i >= b.len {
		panic(fmt.Sprintf("value: bit index %d out of range [0,%d)", i, b.len))
	}

	return b.data[i/8]&(0x80>>(i%8)) != 0
}

// Bytes returns the packed bit data, most-significant bit first, with any
// trailing bits of the final byte zero. The returned slice must not be
// modified.
func (b BitString) Bytes() []byte {
	return b.data
}

// Equal reports whether two bit strings have identical length and bits.
func (b BitString) Equal(other BitString) bool {
	if b.len != other.len {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.len + 1)
	for i := 0; i < b.len; i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
