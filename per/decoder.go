package per

import (
	"errors"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/arloliu/asnpack/codec"
	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/internal/bitio"
	"github.com/arloliu/asnpack/internal/options"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

// Decoder deserializes values from a bit-addressable buffer using the
// packed encoding rules. It mirrors every Encoder packing rule
// bit-for-bit; any mismatch between expected and present bits is a decode
// error, never a silent coercion.
//
// A Decoder owns its input for the duration of one top-level decode and
// is not safe for concurrent use.
type Decoder struct {
	aligned bool
	r       *bitio.Reader
}

var _ codec.Decoder = (*Decoder)(nil)

// NewDecoder creates a packed decoder over fully materialized input. The
// variant must match the one the message was encoded with.
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	var cfg EngineConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{aligned: cfg.Aligned, r: bitio.NewReader(data)}, nil
}

// Remaining returns the number of unread bits, including any final
// padding bits.
func (d *Decoder) Remaining() int {
	return d.r.Remaining()
}

// CarriesTags reports false: the packed formats encode no tags.
func (d *Decoder) CarriesTags() bool {
	return false
}

// PeekTag reports that lookahead by tag is impossible: the packed formats
// encode no tags. Open-type tagging is a future extension of the engine
// surface.
func (d *Decoder) PeekTag() (tag.Tag, error) {
	return tag.Tag{}, newError(KindStructure, "tags are not encoded in the packed format")
}

// DecodeOptionFlag consumes the one-bit presence flag of an optional
// member.
func (d *Decoder) DecodeOptionFlag(_ tag.Tag) (bool, error) {
	present, err := d.r.ReadBool()
	if err != nil {
		return false, d.wrap(err, "optional presence flag")
	}

	return present, nil
}

// DecodeBool unpacks the single boolean bit.
func (d *Decoder) DecodeBool(_ tag.Tag) (bool, error) {
	v, err := d.r.ReadBool()
	if err != nil {
		return false, d.wrap(err, "boolean")
	}

	return v, nil
}

// DecodeNull consumes nothing: the null value has no content on the
// packed wire, so a null at the current position is always valid.
func (d *Decoder) DecodeNull(_ tag.Tag) error {
	return nil
}

// DecodeInteger mirrors EncodeInteger's constraint-driven form selection.
func (d *Decoder) DecodeInteger(_ tag.Tag, c constraint.Constraints) (*big.Int, error) {
	vr := c.Value

	if !vr.Extensible && vr.Bounded() {
		if _, ok := vr.Span(); ok {
			offset, err := d.decodeConstrainedWhole(vr)
			if err != nil {
				return nil, err
			}
			v := int64(uint64(vr.Min.Value) + offset)
			if !vr.Contains(v) {
				return nil, newError(KindOutOfRange, "integer %d outside constraint %s", v, vr)
			}

			return big.NewInt(v), nil
		}
	}

	if !vr.Extensible && vr.Min.Set {
		octets, err := d.readLengthPrefixedOctets()
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(octets)
		v.Add(v, big.NewInt(vr.Min.Value))

		return v, nil
	}

	octets, err := d.readLengthPrefixedOctets()
	if err != nil {
		return nil, err
	}
	if len(octets) == 0 {
		return nil, newError(KindStructure, "empty integer contents")
	}

	return parseTwosComplement(octets), nil
}

// DecodeEnumerated mirrors EncodeEnumerated.
func (d *Decoder) DecodeEnumerated(t tag.Tag, c constraint.Constraints) (int64, error) {
	vr := c.Value
	if !vr.Extensible && vr.Bounded() {
		if _, ok := vr.Span(); ok {
			offset, err := d.decodeConstrainedWhole(vr)
			if err != nil {
				return 0, err
			}
			v := int64(uint64(vr.Min.Value) + offset)
			if !vr.Contains(v) {
				return 0, newError(KindOutOfRange, "enumerated %d outside constraint %s", v, vr)
			}

			return v, nil
		}
	}

	n, err := d.DecodeInteger(t, constraint.None)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, newError(KindOutOfRange, "enumerated discriminant %s too large", n)
	}

	return n.Int64(), nil
}

// DecodeBitString mirrors EncodeBitString.
func (d *Decoder) DecodeBitString(_ tag.Tag, c constraint.Constraints) (value.BitString, error) {
	sz := c.Size

	if exact, ok := sz.Exact(); ok && exact <= 65536 {
		n := int(exact)
		if n == 0 {
			return value.BitString{}, nil
		}
		if d.aligned && n > 16 {
			d.r.Align()
		}

		return d.readBits(n)
	}

	alignContent := d.aligned && !(sz.Max.Set && !sz.Extensible && sz.Max.Value <= 16)

	var data []byte
	total := 0
	err := d.decodeLength(sz, func(count int) error {
		if count == 0 {
			return nil
		}
		if alignContent {
			d.r.Align()
		}
		bs, err := d.readBits(count)
		if err != nil {
			return err
		}
		data = append(data, bs.Bytes()...)
		total += count

		return nil
	})
	if err != nil {
		return value.BitString{}, err
	}

	return value.NewBitString(data, total), nil
}

// DecodeOctetString mirrors EncodeOctetString.
func (d *Decoder) DecodeOctetString(_ tag.Tag, c constraint.Constraints) ([]byte, error) {
	return d.decodeOctets(c.Size)
}

// DecodeUTF8String mirrors EncodeUTF8String and rejects invalid UTF-8.
func (d *Decoder) DecodeUTF8String(_ tag.Tag, _ constraint.Constraints) (string, error) {
	octets, err := d.decodeOctets(constraint.Range{})
	if err != nil {
		return "", err
	}
	if !utf8.Valid(octets) {
		return "", newError(KindStructure, "string contents are not valid UTF-8")
	}

	return string(octets), nil
}

// DecodeObjectIdentifier mirrors EncodeObjectIdentifier.
func (d *Decoder) DecodeObjectIdentifier(_ tag.Tag) (value.ObjectIdentifier, error) {
	octets, err := d.readLengthPrefixedOctets()
	if err != nil {
		return nil, err
	}

	return parseOIDContents(octets)
}

// DecodeUTCTime mirrors EncodeUTCTime.
func (d *Decoder) DecodeUTCTime(_ tag.Tag) (time.Time, error) {
	octets, err := d.readLengthPrefixedOctets()
	if err != nil {
		return time.Time{}, err
	}

	t, err := value.ParseUTCTime(string(octets))
	if err != nil {
		return time.Time{}, newError(KindStructure, "%s", err)
	}

	return t, nil
}

// DecodeGeneralizedTime mirrors EncodeGeneralizedTime.
func (d *Decoder) DecodeGeneralizedTime(_ tag.Tag) (time.Time, error) {
	octets, err := d.readLengthPrefixedOctets()
	if err != nil {
		return time.Time{}, err
	}

	t, err := value.ParseGeneralizedTime(string(octets))
	if err != nil {
		return time.Time{}, newError(KindStructure, "%s", err)
	}

	return t, nil
}

// DecodeAny consumes one length-prefixed opaque span.
func (d *Decoder) DecodeAny(_ tag.Tag) ([]byte, error) {
	return d.readLengthPrefixedOctets()
}

// DecodeSequence returns this decoder: packed sequence members
// concatenate without framing, so decoding continues on the same cursor.
func (d *Decoder) DecodeSequence(_ tag.Tag) (codec.Decoder, error) {
	return d, nil
}

// DecodeSet decodes exactly like DecodeSequence.
func (d *Decoder) DecodeSet(t tag.Tag) (codec.Decoder, error) {
	return d.DecodeSequence(t)
}

// DecodeSequenceOf resolves the element count from the size constraint
// and the wire, then invokes elem that many times.
func (d *Decoder) DecodeSequenceOf(_ tag.Tag, c constraint.Constraints, elem func(codec.Decoder) error) error {
	return d.decodeLength(c.Size, func(count int) error {
		for i := 0; i < count; i++ {
			if err := elem(d); err != nil {
				return err
			}
		}

		return nil
	})
}

// DecodeSetOf decodes exactly like DecodeSequenceOf; ordering and
// deduplication happen in the blanket layer.
func (d *Decoder) DecodeSetOf(t tag.Tag, c constraint.Constraints, elem func(codec.Decoder) error) error {
	return d.DecodeSequenceOf(t, c, elem)
}

// DecodeExplicitPrefix returns this decoder: the explicit wrapper has no
// packed wire presence.
func (d *Decoder) DecodeExplicitPrefix(_ tag.Tag) (codec.Decoder, error) {
	return d, nil
}

// CustomError implements the error contract for format-agnostic blanket
// code.
func (d *Decoder) CustomError(msg string) error {
	return &Error{Kind: KindCustom, Msg: msg}
}

// decodeConstrainedWhole mirrors encodeConstrainedWhole, returning the
// offset from the range's lower bound.
func (d *Decoder) decodeConstrainedWhole(r constraint.Range) (uint64, error) {
	width, _ := r.BitWidth()
	if width == 0 {
		return 0, nil
	}

	if !d.aligned {
		v, err := d.r.ReadBits(width)
		if err != nil {
			return 0, d.wrap(err, "constrained integer")
		}

		return v, nil
	}

	span, _ := r.Span()
	switch {
	case span <= 255:
		v, err := d.r.ReadBits(width)
		if err != nil {
			return 0, d.wrap(err, "constrained integer")
		}

		return v, nil
	case span == 256:
		d.r.Align()
		v, err := d.r.ReadBits(8)
		if err != nil {
			return 0, d.wrap(err, "constrained integer")
		}

		return v, nil
	case span <= 65536:
		d.r.Align()
		v, err := d.r.ReadBits(16)
		if err != nil {
			return 0, d.wrap(err, "constrained integer")
		}

		return v, nil
	default:
		maxOctets := int64((width + 7) / 8)
		nOffset, err := d.decodeConstrainedWhole(constraint.Range{
			Min: constraint.At(1),
			Max: constraint.At(maxOctets),
		})
		if err != nil {
			return 0, err
		}
		n := int(nOffset) + 1
		if n > 8 {
			return 0, newError(KindMalformedLength, "constrained integer spans %d octets", n)
		}
		d.r.Align()
		v, err := d.r.ReadBits(n * 8)
		if err != nil {
			return 0, d.wrap(err, "constrained integer")
		}

		return v, nil
	}
}

// decodeLength mirrors encodeLength's form selection, handing each
// fragment's item count to consume.
func (d *Decoder) decodeLength(sz constraint.Range, consume func(count int) error) error {
	if exact, ok := sz.Exact(); ok && exact < 65536 {
		return consume(int(exact))
	}

	if !sz.Extensible && sz.Bounded() && sz.Max.Value < 65536 {
		offset, err := d.decodeConstrainedWhole(sz)
		if err != nil {
			return err
		}
		n := int64(uint64(sz.Min.Value) + offset)
		if !sz.Contains(n) {
			return newError(KindMalformedLength, "length %d outside constraint %s", n, sz)
		}

		return consume(int(n))
	}

	total := 0
	for {
		if d.aligned {
			d.r.Align()
		}

		first, err := d.r.ReadBits(8)
		if err != nil {
			return d.wrap(err, "length determinant")
		}

		switch {
		case first&0x80 == 0:
			if err := d.checkLength(total+int(first), sz); err != nil {
				return err
			}

			return consume(int(first))
		case first&0xC0 == 0x80:
			second, err := d.r.ReadBits(8)
			if err != nil {
				return d.wrap(err, "length determinant")
			}
			count := int(first&0x3F)<<8 | int(second)
			if err := d.checkLength(total+count, sz); err != nil {
				return err
			}

			return consume(count)
		default:
			m := int(first & 0x3F)
			if m < 1 || m > 4 {
				return newError(KindMalformedLength, "fragment multiplier %d outside 1..4", m)
			}
			total += m * fragmentQuantum
			if !sz.Extensible && sz.Max.Set && int64(total) > sz.Max.Value {
				return newError(KindMalformedLength, "length %d outside constraint %s", total, sz)
			}
			if err := consume(m * fragmentQuantum); err != nil {
				return err
			}
		}
	}
}

// checkLength rejects a general-form total outside a declared wide size
// bound; the constrained forms never reach here.
func (d *Decoder) checkLength(n int, sz constraint.Range) error {
	if !sz.Extensible && !sz.Contains(int64(n)) {
		return newError(KindMalformedLength, "length %d outside constraint %s", n, sz)
	}

	return nil
}

// readLengthPrefixedOctets mirrors writeLengthPrefixedOctets.
func (d *Decoder) readLengthPrefixedOctets() ([]byte, error) {
	var out []byte
	err := d.decodeLength(constraint.Range{}, func(count int) error {
		if count == 0 {
			return nil
		}
		if d.aligned {
			d.r.Align()
		}
		b, err := d.r.ReadBytes(count)
		if err != nil {
			return d.wrap(err, "contents")
		}
		out = append(out, b...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// decodeOctets mirrors encodeOctets.
func (d *Decoder) decodeOctets(sz constraint.Range) ([]byte, error) {
	if exact, ok := sz.Exact(); ok && exact <= 65536 {
		n := int(exact)
		if n == 0 {
			return []byte{}, nil
		}
		if d.aligned && n > 2 {
			d.r.Align()
		}
		b, err := d.r.ReadBytes(n)
		if err != nil {
			return nil, d.wrap(err, "octet string")
		}

		return b, nil
	}

	alignContent := d.aligned && !(sz.Max.Set && !sz.Extensible && sz.Max.Value <= 2)

	var out []byte
	err := d.decodeLength(sz, func(count int) error {
		if count == 0 {
			return nil
		}
		if alignContent {
			d.r.Align()
		}
		b, err := d.r.ReadBytes(count)
		if err != nil {
			return d.wrap(err, "octet string")
		}
		out = append(out, b...)

		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}

// readBits reads n bits into a BitString.
func (d *Decoder) readBits(n int) (value.BitString, error) {
	full := n / 8
	rem := n % 8

	data, err := d.r.ReadBytes(full)
	if err != nil {
		return value.BitString{}, d.wrap(err, "bit string")
	}
	if rem > 0 {
		v, err := d.r.ReadBits(rem)
		if err != nil {
			return value.BitString{}, d.wrap(err, "bit string")
		}
		data = append(data, byte(v<<(8-rem)))
	}

	return value.NewBitString(data, n), nil
}

// wrap maps low-level reader failures onto the format's error kinds.
func (d *Decoder) wrap(err error, what string) error {
	if errors.Is(err, bitio.ErrShortInput) {
		return newError(KindEndOfInput, "premature end of input reading %s", what)
	}

	return newError(KindStructure, "reading %s: %s", what, err)
}

// parseTwosComplement interprets minimal two's-complement octets.
func parseTwosComplement(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		shift := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, shift)
	}

	return v
}

// parseOIDContents decodes X.690 object identifier contents octets.
func parseOIDContents(b []byte) (value.ObjectIdentifier, error) {
	if len(b) == 0 {
		return nil, newError(KindStructure, "empty object identifier contents")
	}

	var arcs []uint64
	var cur uint64
	inArc := false
	for i, oct := range b {
		if !inArc && oct == 0x80 {
			return nil, newError(KindStructure, "non-minimal base-128 arc at octet %d", i)
		}
		if cur > (1<<57 - 1) {
			return nil, newError(KindStructure, "object identifier arc overflows")
		}
		cur = cur<<7 | uint64(oct&0x7F)
		if oct&0x80 != 0 {
			inArc = true
			continue
		}
		arcs = append(arcs, cur)
		cur = 0
		inArc = false
	}
	if inArc {
		return nil, newError(KindStructure, "truncated base-128 arc")
	}

	first := arcs[0]
	oid := make(value.ObjectIdentifier, 0, len(arcs)+1)
	switch {
	case first < 40:
		oid = append(oid, 0, uint32(first))
	case first < 80:
		oid = append(oid, 1, uint32(first-40))
	default:
		if first-80 > uint64(^uint32(0)) {
			return nil, newError(KindStructure, "object identifier arc overflows")
		}
		oid = append(oid, 2, uint32(first-80))
	}
	for _, arc := range arcs[1:] {
		if arc > uint64(^uint32(0)) {
			return nil, newError(KindStructure, "object identifier arc overflows")
		}
		oid = append(oid, uint32(arc))
	}

	return oid, nil
}
