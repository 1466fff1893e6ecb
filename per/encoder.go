package per

import (
	"math/big"
	"math/bits"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/arloliu/asnpack/codec"
	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/internal/bitio"
	"github.com/arloliu/asnpack/internal/options"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

// Fragmented length determinants emit maximal chunks of this many items
// (bits, octets, or elements) before the final remainder length.
const fragmentQuantum = 16384

// Encoder serializes values against a bit-addressable buffer using the
// packed encoding rules.
//
// An Encoder is single-use: create one per message, drive it through the
// codec contract, and call Finish to obtain the encoded bytes. It is not
// safe for concurrent use.
type Encoder struct {
	aligned bool
	w       *bitio.Writer
}

var _ codec.Encoder = (*Encoder)(nil)

// NewEncoder creates a packed encoder. The default is the unaligned
// variant; pass WithAligned for the aligned variant.
func NewEncoder(opts ...Option) (*Encoder, error) {
	var cfg EngineConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{aligned: cfg.Aligned, w: bitio.NewWriter()}, nil
}

// BitLen returns the number of bits emitted so far.
func (e *Encoder) BitLen() int {
	return e.w.BitLen()
}

// Bytes returns the encoded bytes with the final partial byte
// zero-padded. The slice references an internal pooled buffer; use Finish
// to obtain an owned copy.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}

// Finish returns an owned copy of the encoded bytes and releases the
// encoder's buffer. The encoder must not be used afterwards.
func (e *Encoder) Finish() []byte {
	out := slices.Clone(e.w.Bytes())
	e.w.Close()
	e.w = nil

	return out
}

// CarriesTags reports false: the packed formats encode no tags.
func (e *Encoder) CarriesTags() bool {
	return false
}

// EncodeBool packs a boolean to exactly one bit in both variants.
func (e *Encoder) EncodeBool(_ tag.Tag, v bool) error {
	e.w.WriteBool(v)
	return nil
}

// EncodeNull emits nothing: the null value has no content and the packed
// formats give it no framing.
func (e *Encoder) EncodeNull(_ tag.Tag) error {
	return nil
}

// EncodeOptionFlag emits the one-bit presence flag for an optional
// member. An absent member contributes this preamble bit and no content.
func (e *Encoder) EncodeOptionFlag(_ tag.Tag, present bool) error {
	e.w.WriteBool(present)
	return nil
}

// EncodeInteger encodes an integer with minimal width derived from the
// value constraint: a finite non-extensible range packs value-lo into the
// range's exact bit width, a lower bound alone yields a length-prefixed
// non-negative offset, and anything else falls back to length-prefixed
// minimal two's-complement octets.
func (e *Encoder) EncodeInteger(_ tag.Tag, c constraint.Constraints, v *big.Int) error {
	vr := c.Value

	if !vr.Extensible && vr.Bounded() {
		if _, ok := vr.Span(); ok {
			if !v.IsInt64() || !vr.Contains(v.Int64()) {
				return newError(KindOutOfRange, "integer %s outside constraint %s", v, vr)
			}
			offset := uint64(v.Int64()) - uint64(vr.Min.Value)
			e.encodeConstrainedWhole(offset, vr)

			return nil
		}
	}

	if !vr.Extensible && vr.Min.Set {
		lo := big.NewInt(vr.Min.Value)
		if v.Cmp(lo) < 0 {
			return newError(KindOutOfRange, "integer %s below lower bound %d", v, vr.Min.Value)
		}
		offset := new(big.Int).Sub(v, lo)

		return e.writeLengthPrefixedOctets(unsignedOctets(offset))
	}

	return e.writeLengthPrefixedOctets(twosComplementOctets(v))
}

// EncodeEnumerated packs a discriminant as a constrained whole number
// over the call site's value range, typically [0, variants-1].
func (e *Encoder) EncodeEnumerated(t tag.Tag, c constraint.Constraints, v int64) error {
	vr := c.Value
	if !vr.Extensible && vr.Bounded() {
		if _, ok := vr.Span(); ok {
			if !vr.Contains(v) {
				return newError(KindOutOfRange, "enumerated %d outside constraint %s", v, vr)
			}
			e.encodeConstrainedWhole(uint64(v)-uint64(vr.Min.Value), vr)

			return nil
		}
	}

	return e.EncodeInteger(t, constraint.None, big.NewInt(v))
}

// EncodeBitString emits a length determinant counted in bits followed by
// the raw bits. A fixed non-extensible size suppresses the determinant;
// the aligned variant pads to an octet boundary before the bits unless
// the size bound keeps them at 16 bits or fewer.
func (e *Encoder) EncodeBitString(_ tag.Tag, c constraint.Constraints, v value.BitString) error {
	sz := c.Size
	n := v.Len()

	if exact, ok := sz.Exact(); ok && exact <= 65536 {
		if int64(n) != exact {
			return newError(KindOutOfRange, "bit string length %d, constraint pins %d", n, exact)
		}
		if n == 0 {
			return nil
		}
		if e.aligned && n > 16 {
			e.w.Align()
		}
		e.writeBitSpan(v, 0, n)

		return nil
	}

	alignContent := e.aligned && !(sz.Max.Set && !sz.Extensible && sz.Max.Value <= 16)
	off := 0

	return e.encodeLength(n, sz, func(count int) error {
		if count == 0 {
			return nil
		}
		if alignContent {
			e.w.Align()
		}
		e.writeBitSpan(v, off, count)
		off += count

		return nil
	})
}

// EncodeOctetString emits a length determinant counted in octets followed
// by the raw octets, with the same fixed-size and alignment rules as bit
// strings (the small-size threshold is two octets).
func (e *Encoder) EncodeOctetString(_ tag.Tag, c constraint.Constraints, v []byte) error {
	return e.encodeOctets(c.Size, v)
}

// EncodeUTF8String encodes the string's UTF-8 octets behind a general
// length determinant. Size constraints on UTF8String count characters,
// not octets, so they are never packed-visible and are ignored here.
func (e *Encoder) EncodeUTF8String(_ tag.Tag, _ constraint.Constraints, v string) error {
	if !utf8.ValidString(v) {
		return newError(KindStructure, "string is not valid UTF-8")
	}

	return e.encodeOctets(constraint.Range{}, []byte(v))
}

// EncodeObjectIdentifier emits the identifier's contents octets behind a
// general length determinant.
func (e *Encoder) EncodeObjectIdentifier(_ tag.Tag, v value.ObjectIdentifier) error {
	if err := v.Validate(); err != nil {
		return newError(KindStructure, "%s", err)
	}

	return e.writeLengthPrefixedOctets(oidContents(v))
}

// EncodeUTCTime emits the minute-precision time text behind a general
// length determinant.
func (e *Encoder) EncodeUTCTime(_ tag.Tag, v time.Time) error {
	return e.writeLengthPrefixedOctets([]byte(value.FormatUTCTime(v)))
}

// EncodeGeneralizedTime emits the fractional-precision time text behind a
// general length determinant.
func (e *Encoder) EncodeGeneralizedTime(_ tag.Tag, v time.Time) error {
	return e.writeLengthPrefixedOctets([]byte(value.FormatGeneralizedTime(v)))
}

// EncodeAny emits an undecoded span as length-prefixed opaque octets.
func (e *Encoder) EncodeAny(_ tag.Tag, contents []byte) error {
	return e.writeLengthPrefixedOctets(contents)
}

// EncodeSequence runs the scope against this encoder directly: packed
// sequences have no tag or length framing, so the members simply
// concatenate at the current bit position.
func (e *Encoder) EncodeSequence(_ tag.Tag, scope func(codec.Encoder) error) error {
	return scope(e)
}

// EncodeSet encodes exactly like EncodeSequence: the packed formats fix
// SET member order by the type definition.
func (e *Encoder) EncodeSet(t tag.Tag, scope func(codec.Encoder) error) error {
	return e.EncodeSequence(t, scope)
}

// EncodeSequenceOf emits the element count as a length determinant (or
// nothing, when the size constraint pins it) followed by the elements.
func (e *Encoder) EncodeSequenceOf(_ tag.Tag, c constraint.Constraints, n int, elem func(codec.Encoder, int) error) error {
	i := 0

	return e.encodeLength(n, c.Size, func(count int) error {
		for k := 0; k < count; k++ {
			if err := elem(e, i); err != nil {
				return err
			}
			i++
		}

		return nil
	})
}

// EncodeSetOf encodes exactly like EncodeSequenceOf; deterministic
// element ordering is the blanket layer's responsibility.
func (e *Encoder) EncodeSetOf(t tag.Tag, c constraint.Constraints, n int, elem func(codec.Encoder, int) error) error {
	return e.EncodeSequenceOf(t, c, n, elem)
}

// EncodeExplicitPrefix runs the inner scope directly: tags are not
// encoded, so the explicit wrapper vanishes on the packed wire.
func (e *Encoder) EncodeExplicitPrefix(_ tag.Tag, inner func(codec.Encoder) error) error {
	return inner(e)
}

// CustomError implements the error contract for format-agnostic blanket
// code.
func (e *Encoder) CustomError(msg string) error {
	return &Error{Kind: KindCustom, Msg: msg}
}

// encodeConstrainedWhole packs offset (value minus the range's lower
// bound) into the exact width the range dictates. The caller guarantees
// the range is finite, non-extensible, and contains the value.
//
// The unaligned variant always uses a bit field of ceil(log2(span)) bits.
// The aligned variant uses that bit field only for spans up to 255;
// larger spans use one or two aligned octets, and spans beyond 65536 use
// minimal octets behind a constrained octet-count prefix.
func (e *Encoder) encodeConstrainedWhole(offset uint64, r constraint.Range) {
	width, _ := r.BitWidth()
	if width == 0 {
		return
	}

	if !e.aligned {
		e.w.WriteBits(offset, width)
		return
	}

	span, _ := r.Span()
	switch {
	case span <= 255:
		e.w.WriteBits(offset, width)
	case span == 256:
		e.w.Align()
		e.w.WriteBits(offset, 8)
	case span <= 65536:
		e.w.Align()
		e.w.WriteBits(offset, 16)
	default:
		n := (bits.Len64(offset) + 7) / 8
		if n == 0 {
			n = 1
		}
		maxOctets := int64((width + 7) / 8)
		e.encodeConstrainedWhole(uint64(n-1), constraint.Range{
			Min: constraint.At(1),
			Max: constraint.At(maxOctets),
		})
		e.w.Align()
		e.w.WriteBits(offset, n*8)
	}
}

// encodeLength writes the length determinant for n items under the size
// constraint sz and hands the item counts to emit, fragmenting when the
// general form requires it.
//
// Form selection, mirrored exactly by the decoder: an exact
// non-extensible size emits nothing; a finite range below 65536 emits a
// constrained whole number; everything else uses the general form - one
// octet for counts up to 127, two octets (10 + 14-bit count) up to 16383,
// and above that maximal fragments of fragmentQuantum items (11 + a 1..4
// multiplier octet) terminated by a short-form remainder, including a
// zero remainder.
func (e *Encoder) encodeLength(n int, sz constraint.Range, emit func(count int) error) error {
	if exact, ok := sz.Exact(); ok && exact < 65536 {
		if int64(n) != exact {
			return newError(KindOutOfRange, "length %d, constraint pins %d", n, exact)
		}

		return emit(n)
	}

	if !sz.Extensible && sz.Bounded() && sz.Max.Value < 65536 {
		if !sz.Contains(int64(n)) {
			return newError(KindOutOfRange, "length %d outside constraint %s", n, sz)
		}
		e.encodeConstrainedWhole(uint64(n)-uint64(sz.Min.Value), sz)

		return emit(n)
	}

	// Wide bounds (65536 and up) still use the general form, but the
	// declared constraint holds regardless of how the count is framed.
	if !sz.Extensible && !sz.Contains(int64(n)) {
		return newError(KindOutOfRange, "length %d outside constraint %s", n, sz)
	}

	remaining := n
	for {
		if e.aligned {
			e.w.Align()
		}
		if remaining >= fragmentQuantum {
			m := remaining / fragmentQuantum
			if m > 4 {
				m = 4
			}
			e.w.WriteBits(0xC0|uint64(m), 8)
			if err := emit(m * fragmentQuantum); err != nil {
				return err
			}
			remaining -= m * fragmentQuantum

			continue
		}

		if remaining <= 127 {
			e.w.WriteBits(uint64(remaining), 8)
		} else {
			e.w.WriteBits(0x8000|uint64(remaining), 16)
		}

		return emit(remaining)
	}
}

// writeLengthPrefixedOctets emits b behind a general length determinant,
// the common shape for unconstrained integers, open values, object
// identifiers, and time text.
func (e *Encoder) writeLengthPrefixedOctets(b []byte) error {
	off := 0

	return e.encodeLength(len(b), constraint.Range{}, func(count int) error {
		if count == 0 {
			return nil
		}
		if e.aligned {
			e.w.Align()
		}
		e.w.WriteBytes(b[off : off+count])
		off += count

		return nil
	})
}

// encodeOctets emits octets under a size constraint with the octet-string
// form rules: fixed sizes up to two octets stay unaligned bit fields,
// larger fixed sizes drop the determinant but align, and everything else
// is determinant plus contents.
func (e *Encoder) encodeOctets(sz constraint.Range, b []byte) error {
	n := len(b)

	if exact, ok := sz.Exact(); ok && exact <= 65536 {
		if int64(n) != exact {
			return newError(KindOutOfRange, "octet string length %d, constraint pins %d", n, exact)
		}
		if n == 0 {
			return nil
		}
		if e.aligned && n > 2 {
			e.w.Align()
		}
		e.w.WriteBytes(b)

		return nil
	}

	alignContent := e.aligned && !(sz.Max.Set && !sz.Extensible && sz.Max.Value <= 2)
	off := 0

	return e.encodeLength(n, sz, func(count int) error {
		if count == 0 {
			return nil
		}
		if alignContent {
			e.w.Align()
		}
		e.w.WriteBytes(b[off : off+count])
		off += count

		return nil
	})
}

// writeBitSpan writes n bits of v starting at bit offset off. Fragment
// offsets are always octet multiples, which keeps the fast path hot.
func (e *Encoder) writeBitSpan(v value.BitString, off, n int) {
	data := v.Bytes()
	if off%8 == 0 {
		full := n / 8
		start := off / 8
		e.w.WriteBytes(data[start : start+full])
		if rem := n % 8; rem > 0 {
			e.w.WriteBits(uint64(data[start+full]>>(8-rem)), rem)
		}

		return
	}

	for i := off; i < off+n; i++ {
		e.w.WriteBool(v.Bit(i))
	}
}

// unsignedOctets returns the minimal big-endian octets of a non-negative
// integer; zero is one zero octet.
func unsignedOctets(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}

	return b
}

// twosComplementOctets returns the minimal two's-complement big-endian
// octets of v.
func twosComplementOctets(v *big.Int) []byte {
	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}

		return b
	}

	// Minimal n satisfies v >= -(2^(8n-1)); derive it from v+1 so exact
	// powers of two need no special case.
	m := new(big.Int).Add(v, big.NewInt(1))
	n := m.BitLen()/8 + 1

	shifted := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	shifted.Add(shifted, v)

	return shifted.Bytes()
}

// oidContents encodes the X.690 contents octets of an object identifier:
// the first two arcs combine into 40*arc0+arc1, every arc in base-128
// with continuation bits.
func oidContents(oid value.ObjectIdentifier) []byte {
	out := appendBase128(nil, uint64(oid[0])*40+uint64(oid[1]))
	for _, arc := range oid[2:] {
		out = appendBase128(out, uint64(arc))
	}

	return out
}

func appendBase128(dst []byte, v uint64) []byte {
	n := 1
	for t := v >> 7; t > 0; t >>= 7 {
		n++
	}
	for i := n - 1; i > 0; i-- {
		dst = append(dst, byte(v>>(7*i))|0x80)
	}

	return append(dst, byte(v&0x7F))
}
