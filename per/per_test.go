package per

import (
	"math/big"
	"testing"
	"time"

	"github.com/arloliu/asnpack/codec"
	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variants runs a subtest once per packed variant, passing the matching
// encoder/decoder options.
func variants(t *testing.T, fn func(t *testing.T, opts []Option)) {
	t.Helper()
	t.Run("unaligned", func(t *testing.T) { fn(t, []Option{WithUnaligned()}) })
	t.Run("aligned", func(t *testing.T) { fn(t, []Option{WithAligned()}) })
}

func newEnc(t *testing.T, opts ...Option) *Encoder {
	t.Helper()
	e, err := NewEncoder(opts...)
	require.NoError(t, err)

	return e
}

func newDec(t *testing.T, data []byte, opts ...Option) *Decoder {
	t.Helper()
	d, err := NewDecoder(data, opts...)
	require.NoError(t, err)

	return d
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, kind, perr.Kind)
}

func TestEncodeBool_OneBit(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		defer e.Finish()

		require.NoError(t, e.EncodeBool(tag.Boolean, true))
		assert.Equal(t, 1, e.BitLen(), "a boolean is exactly one bit in both variants")
		assert.Equal(t, []byte{0x80}, e.Bytes())
	})
}

func TestBool_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeBool(tag.Boolean, true))
		require.NoError(t, e.EncodeBool(tag.Boolean, false))
		require.NoError(t, e.EncodeBool(tag.Boolean, true))

		d := newDec(t, e.Finish(), opts...)
		for _, want := range []bool{true, false, true} {
			got, err := d.DecodeBool(tag.Boolean)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
}

func TestEncodeNull_NoBits(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		defer e.Finish()

		require.NoError(t, e.EncodeNull(tag.Null))
		assert.Equal(t, 0, e.BitLen())

		d := newDec(t, nil, opts...)
		assert.NoError(t, d.DecodeNull(tag.Null), "null decodes from nothing")
	})
}

func TestConstrainedInteger_ExactWidth(t *testing.T) {
	// 5 in [0,7] needs exactly three bits.
	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeInteger(tag.Integer, constraint.ValueRange(0, 7), big.NewInt(5)))
	require.Equal(t, 3, e.BitLen())

	data := e.Finish()
	assert.Equal(t, []byte{0b101_00000}, data)

	d := newDec(t, data, WithUnaligned())
	got, err := d.DecodeInteger(tag.Integer, constraint.ValueRange(0, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Int64())
}

func TestConstrainedInteger_SingleValueNeedsNoBits(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeInteger(tag.Integer, constraint.ValueRange(42, 42), big.NewInt(42)))
		assert.Equal(t, 0, e.BitLen())

		d := newDec(t, e.Finish(), opts...)
		got, err := d.DecodeInteger(tag.Integer, constraint.ValueRange(42, 42))
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Int64())
	})
}

func TestConstrainedInteger_NegativeLowerBound(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		c := constraint.ValueRange(-10, 10)
		for _, v := range []int64{-10, -1, 0, 7, 10} {
			e := newEnc(t, opts...)
			require.NoError(t, e.EncodeInteger(tag.Integer, c, big.NewInt(v)))

			d := newDec(t, e.Finish(), opts...)
			got, err := d.DecodeInteger(tag.Integer, c)
			require.NoError(t, err)
			assert.Equal(t, v, got.Int64())
		}
	})
}

func TestConstrainedInteger_OutOfRange(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		defer e.Finish()

		err := e.EncodeInteger(tag.Integer, constraint.ValueRange(0, 7), big.NewInt(8))
		requireKind(t, err, KindOutOfRange)

		err = e.EncodeInteger(tag.Integer, constraint.ValueRange(0, 7), big.NewInt(-1))
		requireKind(t, err, KindOutOfRange)
	})
}

func TestSemiConstrainedInteger(t *testing.T) {
	// Lower bound only: length-prefixed non-negative offset from the bound.
	e := newEnc(t, WithUnaligned())
	c := constraint.Constraints{Value: constraint.Range{Min: constraint.At(1)}}
	require.NoError(t, e.EncodeInteger(tag.Integer, c, big.NewInt(300)))

	data := e.Finish()
	assert.Equal(t, []byte{0x02, 0x01, 0x2B}, data, "offset 299 behind a one-octet length")

	d := newDec(t, data, WithUnaligned())
	got, err := d.DecodeInteger(tag.Integer, c)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Int64())
}

func TestSemiConstrainedInteger_BelowBound(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	c := constraint.Constraints{Value: constraint.Range{Min: constraint.At(0)}}
	err := e.EncodeInteger(tag.Integer, c, big.NewInt(-1))
	requireKind(t, err, KindOutOfRange)
}

func TestUnconstrainedInteger_TwosComplement(t *testing.T) {
	tests := []struct {
		name string
		v    *big.Int
		want []byte
	}{
		{"zero", big.NewInt(0), []byte{0x01, 0x00}},
		{"positive", big.NewInt(300), []byte{0x02, 0x01, 0x2C}},
		{"minus one", big.NewInt(-1), []byte{0x01, 0xFF}},
		{"minus 128 fits one octet", big.NewInt(-128), []byte{0x01, 0x80}},
		{"minus 129 needs two", big.NewInt(-129), []byte{0x02, 0xFF, 0x7F}},
		{"high bit forces pad octet", big.NewInt(128), []byte{0x02, 0x00, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnc(t, WithUnaligned())
			require.NoError(t, e.EncodeInteger(tag.Integer, constraint.None, tt.v))

			data := e.Finish()
			assert.Equal(t, tt.want, data)

			d := newDec(t, data, WithUnaligned())
			got, err := d.DecodeInteger(tag.Integer, constraint.None)
			require.NoError(t, err)
			assert.Zero(t, tt.v.Cmp(got))
		})
	}
}

func TestUnconstrainedInteger_BigValues(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		huge, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
		require.True(t, ok)

		for _, v := range []*big.Int{huge, new(big.Int).Neg(huge)} {
			e := newEnc(t, opts...)
			require.NoError(t, e.EncodeInteger(tag.Integer, constraint.None, v))

			d := newDec(t, e.Finish(), opts...)
			got, err := d.DecodeInteger(tag.Integer, constraint.None)
			require.NoError(t, err)
			assert.Zero(t, v.Cmp(got))
		}
	})
}

func TestExtensibleRange_FallsBackToUnconstrained(t *testing.T) {
	// The extension marker forfeits constrained encoding entirely.
	e := newEnc(t, WithUnaligned())
	c := constraint.ValueRange(0, 7).Extensible()
	require.NoError(t, e.EncodeInteger(tag.Integer, c, big.NewInt(5)))

	data := e.Finish()
	assert.Equal(t, []byte{0x01, 0x05}, data, "length-prefixed, not a 3-bit field")

	d := newDec(t, data, WithUnaligned())
	got, err := d.DecodeInteger(tag.Integer, c)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Int64())
}

func TestEnumerated_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		c := constraint.ValueRange(0, 4)

		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeEnumerated(tag.Enumerated, c, 3))

		d := newDec(t, e.Finish(), opts...)
		got, err := d.DecodeEnumerated(tag.Enumerated, c)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got)
	})
}

func TestEnumerated_DiscriminantWidth(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeEnumerated(tag.Enumerated, constraint.ValueRange(0, 4), 3))
	assert.Equal(t, 3, e.BitLen(), "five variants pack into three bits")
	e.Finish()
}

func TestEnumerated_OutOfRange(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	err := e.EncodeEnumerated(tag.Enumerated, constraint.ValueRange(0, 4), 5)
	requireKind(t, err, KindOutOfRange)
}

func TestOptionFlag_AbsentThenPresent(t *testing.T) {
	// An absent optional member costs one preamble bit and nothing else.
	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeOptionFlag(tag.Context(0), false))
	require.NoError(t, e.EncodeBool(tag.Boolean, true))
	require.Equal(t, 2, e.BitLen())

	data := e.Finish()
	assert.Equal(t, []byte{0b01_000000}, data)

	d := newDec(t, data, WithUnaligned())
	present, err := d.DecodeOptionFlag(tag.Context(0))
	require.NoError(t, err)
	assert.False(t, present)

	b, err := d.DecodeBool(tag.Boolean)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestBitString_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		for _, bs := range []value.BitString{
			{},
			value.BitStringFromBools([]bool{true}),
			value.BitStringFromBools([]bool{true, false, true, true, false}),
			value.NewBitString([]byte{0xDE, 0xAD, 0xBE}, 23),
		} {
			e := newEnc(t, opts...)
			require.NoError(t, e.EncodeBitString(tag.BitString, constraint.None, bs))

			d := newDec(t, e.Finish(), opts...)
			got, err := d.DecodeBitString(tag.BitString, constraint.None)
			require.NoError(t, err)
			assert.True(t, bs.Equal(got), "bit string %s", bs)
		}
	})
}

func TestBitString_FixedSizeOmitsDeterminant(t *testing.T) {
	bs := value.BitStringFromBools([]bool{true, false, true})

	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeBitString(tag.BitString, constraint.SizeFixed(3), bs))
	assert.Equal(t, 3, e.BitLen(), "the pinned size carries no determinant")

	data := e.Finish()
	assert.Equal(t, []byte{0b101_00000}, data)

	d := newDec(t, data, WithUnaligned())
	got, err := d.DecodeBitString(tag.BitString, constraint.SizeFixed(3))
	require.NoError(t, err)
	assert.True(t, bs.Equal(got))
}

func TestBitString_FixedSizeMismatch(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	err := e.EncodeBitString(tag.BitString, constraint.SizeFixed(4),
		value.BitStringFromBools([]bool{true}))
	requireKind(t, err, KindOutOfRange)
}

func TestBitString_AlignedLargeFixedSize(t *testing.T) {
	// Past 16 bits the aligned variant pads to an octet boundary first.
	bs := value.NewBitString([]byte{0xAB, 0xCD, 0x80}, 17)

	e := newEnc(t, WithAligned())
	require.NoError(t, e.EncodeBool(tag.Boolean, true))
	require.NoError(t, e.EncodeBitString(tag.BitString, constraint.SizeFixed(17), bs))

	data := e.Finish()
	require.Equal(t, []byte{0x80, 0xAB, 0xCD, 0x80}, data)

	d := newDec(t, data, WithAligned())
	_, err := d.DecodeBool(tag.Boolean)
	require.NoError(t, err)
	got, err := d.DecodeBitString(tag.BitString, constraint.SizeFixed(17))
	require.NoError(t, err)
	assert.True(t, bs.Equal(got))
}

func TestBitString_UnalignedNeverPads(t *testing.T) {
	bs := value.NewBitString([]byte{0xFF, 0xFF, 0x80}, 17)

	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeBool(tag.Boolean, false))
	require.NoError(t, e.EncodeBitString(tag.BitString, constraint.SizeFixed(17), bs))
	assert.Equal(t, 18, e.BitLen())
	e.Finish()
}

func TestOctetString_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		for _, v := range [][]byte{
			{},
			{0x42},
			{0xDE, 0xAD, 0xBE, 0xEF},
		} {
			e := newEnc(t, opts...)
			require.NoError(t, e.EncodeOctetString(tag.OctetString, constraint.None, v))

			d := newDec(t, e.Finish(), opts...)
			got, err := d.DecodeOctetString(tag.OctetString, constraint.None)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})
}

func TestOctetString_SmallFixedSizeStaysUnaligned(t *testing.T) {
	// Up to two octets of pinned size remain a bit field even when aligned.
	e := newEnc(t, WithAligned())
	require.NoError(t, e.EncodeBool(tag.Boolean, true))
	require.NoError(t, e.EncodeOctetString(tag.OctetString, constraint.SizeFixed(2), []byte{0xFF, 0x00}))
	assert.Equal(t, 17, e.BitLen(), "no padding before a two-octet pinned string")

	data := e.Finish()

	d := newDec(t, data, WithAligned())
	_, err := d.DecodeBool(tag.Boolean)
	require.NoError(t, err)
	got, err := d.DecodeOctetString(tag.OctetString, constraint.SizeFixed(2))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x00}, got)
}

func TestOctetString_LargerFixedSizeAligns(t *testing.T) {
	e := newEnc(t, WithAligned())
	require.NoError(t, e.EncodeBool(tag.Boolean, true))
	require.NoError(t, e.EncodeOctetString(tag.OctetString, constraint.SizeFixed(3), []byte{0x01, 0x02, 0x03}))

	data := e.Finish()
	require.Equal(t, []byte{0x80, 0x01, 0x02, 0x03}, data)

	d := newDec(t, data, WithAligned())
	_, err := d.DecodeBool(tag.Boolean)
	require.NoError(t, err)
	got, err := d.DecodeOctetString(tag.OctetString, constraint.SizeFixed(3))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got)
}

func TestUTF8String_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		for _, s := range []string{"", "hello", "héllo wörld", "日本語"} {
			e := newEnc(t, opts...)
			require.NoError(t, e.EncodeUTF8String(tag.UTF8String, constraint.None, s))

			d := newDec(t, e.Finish(), opts...)
			got, err := d.DecodeUTF8String(tag.UTF8String, constraint.None)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	})
}

func TestUTF8String_RejectsInvalidEncoding(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	err := e.EncodeUTF8String(tag.UTF8String, constraint.None, string([]byte{0xFF, 0xFE}))
	requireKind(t, err, KindStructure)

	d := newDec(t, []byte{0x02, 0xFF, 0xFE}, WithUnaligned())
	_, err = d.DecodeUTF8String(tag.UTF8String, constraint.None)
	requireKind(t, err, KindStructure)
}

func TestObjectIdentifier_WireContents(t *testing.T) {
	// sha256WithRSAEncryption, a well-known reference encoding.
	oid := value.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}

	e := newEnc(t, WithUnaligned())
	require.NoError(t, e.EncodeObjectIdentifier(tag.ObjectIdentifier, oid))

	data := e.Finish()
	assert.Equal(t, []byte{0x09, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B}, data)

	d := newDec(t, data, WithUnaligned())
	got, err := d.DecodeObjectIdentifier(tag.ObjectIdentifier)
	require.NoError(t, err)
	assert.True(t, oid.Equal(got))
}

func TestObjectIdentifier_LargeSecondArc(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		oid := value.ObjectIdentifier{2, 999, 3}

		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeObjectIdentifier(tag.ObjectIdentifier, oid))

		d := newDec(t, e.Finish(), opts...)
		got, err := d.DecodeObjectIdentifier(tag.ObjectIdentifier)
		require.NoError(t, err)
		assert.True(t, oid.Equal(got))
	})
}

func TestObjectIdentifier_EncodeRejectsInvalid(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	err := e.EncodeObjectIdentifier(tag.ObjectIdentifier, value.ObjectIdentifier{1})
	requireKind(t, err, KindStructure)
}

func TestObjectIdentifier_DecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty contents", []byte{0x00}},
		{"non-minimal arc", []byte{0x02, 0x80, 0x01}},
		{"truncated arc", []byte{0x02, 0x2A, 0x86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDec(t, tt.data, WithUnaligned())
			_, err := d.DecodeObjectIdentifier(tag.ObjectIdentifier)
			requireKind(t, err, KindStructure)
		})
	}
}

func TestTimes_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		utc := time.Date(2026, 8, 30, 12, 34, 0, 0, time.UTC)
		gen := time.Date(2026, 8, 30, 12, 34, 56, 789_000_000, time.UTC)

		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeUTCTime(tag.UTCTime, utc))
		require.NoError(t, e.EncodeGeneralizedTime(tag.GeneralizedTime, gen))

		d := newDec(t, e.Finish(), opts...)
		gotUTC, err := d.DecodeUTCTime(tag.UTCTime)
		require.NoError(t, err)
		assert.True(t, utc.Equal(gotUTC))

		gotGen, err := d.DecodeGeneralizedTime(tag.GeneralizedTime)
		require.NoError(t, err)
		assert.True(t, gen.Equal(gotGen))
	})
}

func TestAny_RoundTrip(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		contents := []byte{0x30, 0x03, 0x01, 0x01, 0xFF}

		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeAny(tag.Context(0), contents))

		d := newDec(t, e.Finish(), opts...)
		got, err := d.DecodeAny(tag.Context(0))
		require.NoError(t, err)
		assert.Equal(t, contents, got)
	})
}

func TestSequence_MembersConcatenate(t *testing.T) {
	// A sequence has no framing of its own: members pack back to back.
	e := newEnc(t, WithUnaligned())
	err := e.EncodeSequence(tag.Sequence, func(se codec.Encoder) error {
		if err := se.EncodeBool(tag.Boolean, true); err != nil {
			return err
		}

		return se.EncodeInteger(tag.Integer, constraint.ValueRange(0, 7), big.NewInt(5))
	})
	require.NoError(t, err)
	require.Equal(t, 4, e.BitLen())

	data := e.Finish()
	assert.Equal(t, []byte{0b1101_0000}, data)

	d := newDec(t, data, WithUnaligned())
	sub, err := d.DecodeSequence(tag.Sequence)
	require.NoError(t, err)

	b, err := sub.DecodeBool(tag.Boolean)
	require.NoError(t, err)
	assert.True(t, b)

	n, err := sub.DecodeInteger(tag.Integer, constraint.ValueRange(0, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n.Int64())
}

func TestExplicitPrefix_VanishesOnWire(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		e := newEnc(t, opts...)
		err := e.EncodeExplicitPrefix(tag.Context(3), func(ie codec.Encoder) error {
			return ie.EncodeBool(tag.Boolean, true)
		})
		require.NoError(t, err)
		assert.Equal(t, 1, e.BitLen(), "the wrapper contributes no bits")

		d := newDec(t, e.Finish(), opts...)
		inner, err := d.DecodeExplicitPrefix(tag.Context(3))
		require.NoError(t, err)

		b, err := inner.DecodeBool(tag.Boolean)
		require.NoError(t, err)
		assert.True(t, b)
	})
}

func TestFieldMap_TaglessFormat(t *testing.T) {
	variants(t, func(t *testing.T, opts []Option) {
		// An empty map contributes nothing, so fields after it stay in
		// sync across the round trip.
		e := newEnc(t, opts...)
		require.NoError(t, codec.EncodeFieldMap(e, tag.Sequence, &value.FieldMap{}))
		require.NoError(t, e.EncodeBool(tag.Boolean, true))

		d := newDec(t, e.Finish(), opts...)
		m, err := codec.DecodeFieldMap(d, tag.Sequence)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())

		b, err := d.DecodeBool(tag.Boolean)
		require.NoError(t, err)
		assert.True(t, b, "the field after the map must read its own bit")

		// A populated map cannot be attributed to tags on decode, so
		// encoding it fails instead of emitting bits the reader would
		// misparse as the next field.
		var populated value.FieldMap
		populated.Insert(value.Open{Tag: tag.Context(1), Contents: []byte{0xAB, 0xCD}})

		e2 := newEnc(t, opts...)
		defer e2.Finish()
		requireKind(t, codec.EncodeFieldMap(e2, tag.Sequence, &populated), KindCustom)
		assert.Equal(t, 0, e2.BitLen(), "the failed encode emits nothing")
	})
}

func TestCarriesTags(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()
	assert.False(t, e.CarriesTags())

	d := newDec(t, nil, WithUnaligned())
	assert.False(t, d.CarriesTags())
}

func TestPeekTag_Unsupported(t *testing.T) {
	d := newDec(t, []byte{0xFF}, WithUnaligned())
	_, err := d.PeekTag()
	requireKind(t, err, KindStructure)
	assert.Equal(t, 8, d.Remaining(), "the failed peek consumes nothing")
}

func TestDecode_EndOfInput(t *testing.T) {
	d := newDec(t, nil, WithUnaligned())

	_, err := d.DecodeBool(tag.Boolean)
	requireKind(t, err, KindEndOfInput)

	_, err = d.DecodeOptionFlag(tag.Context(0))
	requireKind(t, err, KindEndOfInput)

	_, err = d.DecodeOctetString(tag.OctetString, constraint.None)
	requireKind(t, err, KindEndOfInput)
}

func TestCustomError(t *testing.T) {
	e := newEnc(t, WithUnaligned())
	defer e.Finish()

	err := e.CustomError("boom")
	requireKind(t, err, KindCustom)
	assert.Contains(t, err.Error(), "boom")

	d := newDec(t, nil, WithUnaligned())
	requireKind(t, d.CustomError("bust"), KindCustom)
}

func TestVariants_ProduceDistinctStreams(t *testing.T) {
	// The same values differ on the wire once alignment kicks in, which is
	// why the variant is part of the transfer contract.
	encode := func(opts ...Option) []byte {
		e := newEnc(t, opts...)
		require.NoError(t, e.EncodeBool(tag.Boolean, true))
		require.NoError(t, e.EncodeInteger(tag.Integer, constraint.None, big.NewInt(1000)))

		return e.Finish()
	}

	assert.NotEqual(t, encode(WithUnaligned()), encode(WithAligned()))
}
