package codec

// A minimal tag-length-value engine used to exercise the engine contracts
// and the blanket helpers from the tag-carrying side. Each value is one
// byte of tag (class in the top two bits, number below, so numbers must
// stay under 64), one byte of length, and the contents. Scalar contents
// use trivially readable forms (decimal text for integers, raw bytes for
// strings) since only the framing behavior is under test.

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

func tagByte(t tag.Tag) byte {
	return byte(t.Class)<<6 | byte(t.Number)
}

func parseTagByte(b byte) tag.Tag {
	return tag.New(tag.Class(b>>6), uint32(b&0x3F))
}

type tlvEncoder struct {
	buf bytes.Buffer
}

var _ Encoder = (*tlvEncoder)(nil)

func (e *tlvEncoder) writeTLV(t tag.Tag, contents []byte) error {
	if t.Number > 0x3F {
		return fmt.Errorf("tlv: tag number %d too large", t.Number)
	}
	if len(contents) > 0xFF {
		return fmt.Errorf("tlv: contents of %d bytes too large", len(contents))
	}
	e.buf.WriteByte(tagByte(t))
	e.buf.WriteByte(byte(len(contents)))
	e.buf.Write(contents)

	return nil
}

func (e *tlvEncoder) scoped(t tag.Tag, scope func(Encoder) error) error {
	var inner tlvEncoder
	if err := scope(&inner); err != nil {
		return err
	}

	return e.writeTLV(t, inner.buf.Bytes())
}

func (e *tlvEncoder) CarriesTags() bool { return true }

func (e *tlvEncoder) EncodeOptionFlag(_ tag.Tag, _ bool) error {
	// Absence is visible from the next tag; nothing on the wire.
	return nil
}

func (e *tlvEncoder) EncodeAny(t tag.Tag, contents []byte) error {
	return e.writeTLV(t, contents)
}

func (e *tlvEncoder) EncodeBool(t tag.Tag, v bool) error {
	b := byte(0x00)
	if v {
		b = 0xFF
	}

	return e.writeTLV(t, []byte{b})
}

func (e *tlvEncoder) EncodeBitString(t tag.Tag, _ constraint.Constraints, v value.BitString) error {
	contents := append([]byte{byte(v.Len())}, v.Bytes()...)
	return e.writeTLV(t, contents)
}

func (e *tlvEncoder) EncodeEnumerated(t tag.Tag, _ constraint.Constraints, v int64) error {
	return e.writeTLV(t, []byte(fmt.Sprintf("%d", v)))
}

func (e *tlvEncoder) EncodeInteger(t tag.Tag, _ constraint.Constraints, v *big.Int) error {
	return e.writeTLV(t, []byte(v.String()))
}

func (e *tlvEncoder) EncodeNull(t tag.Tag) error {
	return e.writeTLV(t, nil)
}

func (e *tlvEncoder) EncodeObjectIdentifier(t tag.Tag, v value.ObjectIdentifier) error {
	return e.writeTLV(t, []byte(v.String()))
}

func (e *tlvEncoder) EncodeOctetString(t tag.Tag, _ constraint.Constraints, v []byte) error {
	return e.writeTLV(t, v)
}

func (e *tlvEncoder) EncodeUTF8String(t tag.Tag, _ constraint.Constraints, v string) error {
	return e.writeTLV(t, []byte(v))
}

func (e *tlvEncoder) EncodeUTCTime(t tag.Tag, v time.Time) error {
	return e.writeTLV(t, []byte(value.FormatUTCTime(v)))
}

func (e *tlvEncoder) EncodeGeneralizedTime(t tag.Tag, v time.Time) error {
	return e.writeTLV(t, []byte(value.FormatGeneralizedTime(v)))
}

func (e *tlvEncoder) EncodeSequence(t tag.Tag, scope func(Encoder) error) error {
	return e.scoped(t, scope)
}

func (e *tlvEncoder) EncodeSet(t tag.Tag, scope func(Encoder) error) error {
	return e.scoped(t, scope)
}

func (e *tlvEncoder) EncodeSequenceOf(t tag.Tag, _ constraint.Constraints, n int, elem func(Encoder, int) error) error {
	return e.scoped(t, func(inner Encoder) error {
		for i := range n {
			if err := elem(inner, i); err != nil {
				return err
			}
		}

		return nil
	})
}

func (e *tlvEncoder) EncodeSetOf(t tag.Tag, c constraint.Constraints, n int, elem func(Encoder, int) error) error {
	return e.EncodeSequenceOf(t, c, n, elem)
}

func (e *tlvEncoder) EncodeExplicitPrefix(t tag.Tag, inner func(Encoder) error) error {
	return e.scoped(t, inner)
}

func (e *tlvEncoder) CustomError(msg string) error {
	return fmt.Errorf("tlv: %s", msg)
}

type tlvDecoder struct {
	data []byte
	pos  int
}

var _ Decoder = (*tlvDecoder)(nil)

var errTLVExhausted = errors.New("tlv: input exhausted")

func (d *tlvDecoder) readTLV() (tag.Tag, []byte, error) {
	if d.pos+2 > len(d.data) {
		return tag.Tag{}, nil, errTLVExhausted
	}
	t := parseTagByte(d.data[d.pos])
	n := int(d.data[d.pos+1])
	if d.pos+2+n > len(d.data) {
		return tag.Tag{}, nil, errTLVExhausted
	}
	contents := d.data[d.pos+2 : d.pos+2+n]
	d.pos += 2 + n

	return t, contents, nil
}

func (d *tlvDecoder) expect(t tag.Tag) ([]byte, error) {
	got, contents, err := d.readTLV()
	if err != nil {
		return nil, err
	}
	if got != t {
		return nil, fmt.Errorf("tlv: expected tag %s, found %s", t, got)
	}

	return contents, nil
}

func (d *tlvDecoder) CarriesTags() bool { return true }

func (d *tlvDecoder) PeekTag() (tag.Tag, error) {
	if d.pos >= len(d.data) {
		return tag.Tag{}, errTLVExhausted
	}

	return parseTagByte(d.data[d.pos]), nil
}

func (d *tlvDecoder) DecodeOptionFlag(t tag.Tag) (bool, error) {
	pt, err := d.PeekTag()
	if err != nil {
		return false, nil
	}

	return pt == t, nil
}

func (d *tlvDecoder) DecodeAny(t tag.Tag) ([]byte, error) {
	return d.expect(t)
}

func (d *tlvDecoder) DecodeBool(t tag.Tag) (bool, error) {
	contents, err := d.expect(t)
	if err != nil {
		return false, err
	}
	if len(contents) != 1 {
		return false, fmt.Errorf("tlv: boolean of %d bytes", len(contents))
	}

	return contents[0] != 0, nil
}

func (d *tlvDecoder) DecodeBitString(t tag.Tag, _ constraint.Constraints) (value.BitString, error) {
	contents, err := d.expect(t)
	if err != nil {
		return value.BitString{}, err
	}
	if len(contents) < 1 {
		return value.BitString{}, errors.New("tlv: empty bit string body")
	}

	return value.NewBitString(contents[1:], int(contents[0])), nil
}

func (d *tlvDecoder) DecodeEnumerated(t tag.Tag, _ constraint.Constraints) (int64, error) {
	contents, err := d.expect(t)
	if err != nil {
		return 0, err
	}

	var v int64
	if _, err := fmt.Sscanf(string(contents), "%d", &v); err != nil {
		return 0, fmt.Errorf("tlv: bad enumerated %q", contents)
	}

	return v, nil
}

func (d *tlvDecoder) DecodeInteger(t tag.Tag, _ constraint.Constraints) (*big.Int, error) {
	contents, err := d.expect(t)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(string(contents), 10)
	if !ok {
		return nil, fmt.Errorf("tlv: bad integer %q", contents)
	}

	return n, nil
}

func (d *tlvDecoder) DecodeNull(t tag.Tag) error {
	contents, err := d.expect(t)
	if err != nil {
		return err
	}
	if len(contents) != 0 {
		return fmt.Errorf("tlv: null with %d content bytes", len(contents))
	}

	return nil
}

func (d *tlvDecoder) DecodeObjectIdentifier(t tag.Tag) (value.ObjectIdentifier, error) {
	contents, err := d.expect(t)
	if err != nil {
		return nil, err
	}

	var oid value.ObjectIdentifier
	for _, part := range bytes.Split(contents, []byte{'.'}) {
		var arc uint32
		if _, err := fmt.Sscanf(string(part), "%d", &arc); err != nil {
			return nil, fmt.Errorf("tlv: bad oid arc %q", part)
		}
		oid = append(oid, arc)
	}

	return oid, nil
}

func (d *tlvDecoder) DecodeOctetString(t tag.Tag, _ constraint.Constraints) ([]byte, error) {
	contents, err := d.expect(t)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(contents), nil
}

func (d *tlvDecoder) DecodeUTF8String(t tag.Tag, _ constraint.Constraints) (string, error) {
	contents, err := d.expect(t)
	if err != nil {
		return "", err
	}

	return string(contents), nil
}

func (d *tlvDecoder) DecodeUTCTime(t tag.Tag) (time.Time, error) {
	contents, err := d.expect(t)
	if err != nil {
		return time.Time{}, err
	}

	return value.ParseUTCTime(string(contents))
}

func (d *tlvDecoder) DecodeGeneralizedTime(t tag.Tag) (time.Time, error) {
	contents, err := d.expect(t)
	if err != nil {
		return time.Time{}, err
	}

	return value.ParseGeneralizedTime(string(contents))
}

func (d *tlvDecoder) DecodeSequence(t tag.Tag) (Decoder, error) {
	contents, err := d.expect(t)
	if err != nil {
		return nil, err
	}

	return &tlvDecoder{data: contents}, nil
}

func (d *tlvDecoder) DecodeSet(t tag.Tag) (Decoder, error) {
	return d.DecodeSequence(t)
}

func (d *tlvDecoder) DecodeSequenceOf(t tag.Tag, _ constraint.Constraints, elem func(Decoder) error) error {
	contents, err := d.expect(t)
	if err != nil {
		return err
	}

	sub := &tlvDecoder{data: contents}
	for sub.pos < len(sub.data) {
		if err := elem(sub); err != nil {
			return err
		}
	}

	return nil
}

func (d *tlvDecoder) DecodeSetOf(t tag.Tag, c constraint.Constraints, elem func(Decoder) error) error {
	return d.DecodeSequenceOf(t, c, elem)
}

func (d *tlvDecoder) DecodeExplicitPrefix(t tag.Tag) (Decoder, error) {
	return d.DecodeSequence(t)
}

func (d *tlvDecoder) CustomError(msg string) error {
	return fmt.Errorf("tlv: %s", msg)
}
