// Package codec defines the format-agnostic capability contracts between
// data types and wire formats.
//
// Two contracts meet here. The engine contract (Decoder, Encoder) is
// implemented once per wire format: one primitive operation per leaf value
// kind, each parameterized by the tag to expect so implicit retagging
// works uniformly, plus scoped entry/exit operations for nested
// aggregates. The type contract (Decodable, Encodable) is implemented once
// per data type, typically by generated code, and drives exactly one
// engine primitive per operation.
//
// The package also provides the blanket helpers that give every Go native
// type its decode/encode behavior against any conformant engine: optional
// members, integer narrowing, sequences and sets of homogeneous elements,
// implicit and explicit tagging, and the unknown-field preservation map.
package codec

import (
	"math/big"
	"time"

	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

// Decoder is the engine contract a wire format implements for decoding.
//
// Every operation takes the tag the caller expects at this position.
// Formats that frame values with explicit tags verify it; the packed
// formats, which encode no tags, ignore it and rely on the call sequence
// plus constraints alone.
//
// Operations returning a Decoder return the decoder positioned at the
// nested aggregate's content. Formats that frame aggregates with a length
// may bound the returned decoder to that span; the packed formats, where
// constraints alone determine every field's extent, return the same
// cursor.
type Decoder interface {
	// CarriesTags reports whether the format frames values with tags on
	// the wire. Tagless formats cannot discover the tag of an unknown
	// value, so open-value and field-map decoding degrade per the blanket
	// helpers' documented rules.
	CarriesTags() bool

	// PeekTag returns the tag of the next value without consuming any
	// input. Formats that do not carry tags on the wire return an error;
	// open-type tagging on such formats is a future extension.
	PeekTag() (tag.Tag, error)

	// DecodeOptionFlag reports whether an optional member expected under t
	// is present. Tag-carrying formats answer by a non-consuming peek of
	// the next tag; the packed formats consume a one-bit presence flag
	// written by Encoder.EncodeOptionFlag.
	DecodeOptionFlag(t tag.Tag) (bool, error)

	// DecodeAny consumes and returns the undecoded span of one value.
	DecodeAny(t tag.Tag) ([]byte, error)

	DecodeBool(t tag.Tag) (bool, error)
	DecodeBitString(t tag.Tag, c constraint.Constraints) (value.BitString, error)
	DecodeEnumerated(t tag.Tag, c constraint.Constraints) (int64, error)
	DecodeInteger(t tag.Tag, c constraint.Constraints) (*big.Int, error)
	DecodeNull(t tag.Tag) error
	DecodeObjectIdentifier(t tag.Tag) (value.ObjectIdentifier, error)
	DecodeOctetString(t tag.Tag, c constraint.Constraints) ([]byte, error)
	DecodeUTF8String(t tag.Tag, c constraint.Constraints) (string, error)
	DecodeUTCTime(t tag.Tag) (time.Time, error)
	DecodeGeneralizedTime(t tag.Tag) (time.Time, error)

	// DecodeSequence enters a SEQUENCE, returning a decoder scoped to its
	// content. DecodeSet is identical but for SET framing.
	DecodeSequence(t tag.Tag) (Decoder, error)
	DecodeSet(t tag.Tag) (Decoder, error)

	// DecodeSequenceOf decodes a homogeneous list: the engine resolves the
	// element count from the wire and the size constraint, then invokes
	// elem once per element. DecodeSetOf is its SET OF counterpart;
	// ordering and deduplication happen in the blanket layer.
	DecodeSequenceOf(t tag.Tag, c constraint.Constraints, elem func(Decoder) error) error
	DecodeSetOf(t tag.Tag, c constraint.Constraints, elem func(Decoder) error) error

	// DecodeExplicitPrefix consumes one outer tag wrapper and returns a
	// decoder positioned at the inner value, which decodes through its
	// default path.
	DecodeExplicitPrefix(t tag.Tag) (Decoder, error)

	// CustomError wraps msg in the format's own error representation, so
	// format-agnostic code can fail without knowing it.
	CustomError(msg string) error
}

// Encoder is the engine contract a wire format implements for encoding,
// the mirror of Decoder.
//
// EncodeSequence and EncodeSet accept a callback receiving a nested
// encoder view; any framing of the aggregate is finalized only after the
// callback returns, because the serialized size of the nested content may
// not be known in advance. Formats where a constraint pins an exact
// non-extensible shape emit no framing at all.
type Encoder interface {
	// CarriesTags reports whether the format frames values with tags on
	// the wire, mirroring Decoder.CarriesTags. Encoding values that only
	// a tag can identify on a tagless format is an error, never a silent
	// drop of bits the decoder cannot attribute.
	CarriesTags() bool

	// EncodeOptionFlag records presence of an optional member expected
	// under t. Tag-carrying formats emit nothing (absence is visible from
	// the next tag); the packed formats emit a one-bit presence flag.
	EncodeOptionFlag(t tag.Tag, present bool) error

	// EncodeAny emits one value from its undecoded span.
	EncodeAny(t tag.Tag, contents []byte) error

	EncodeBool(t tag.Tag, v bool) error
	EncodeBitString(t tag.Tag, c constraint.Constraints, v value.BitString) error
	EncodeEnumerated(t tag.Tag, c constraint.Constraints, v int64) error
	EncodeInteger(t tag.Tag, c constraint.Constraints, v *big.Int) error
	EncodeNull(t tag.Tag) error
	EncodeObjectIdentifier(t tag.Tag, v value.ObjectIdentifier) error
	EncodeOctetString(t tag.Tag, c constraint.Constraints, v []byte) error
	EncodeUTF8String(t tag.Tag, c constraint.Constraints, v string) error
	EncodeUTCTime(t tag.Tag, v time.Time) error
	EncodeGeneralizedTime(t tag.Tag, v time.Time) error

	EncodeSequence(t tag.Tag, scope func(Encoder) error) error
	EncodeSet(t tag.Tag, scope func(Encoder) error) error

	// EncodeSequenceOf emits a homogeneous list of n elements: the engine
	// writes whatever count framing the size constraint requires, then
	// invokes elem once per index. EncodeSetOf is its SET OF counterpart.
	EncodeSequenceOf(t tag.Tag, c constraint.Constraints, n int, elem func(Encoder, int) error) error
	EncodeSetOf(t tag.Tag, c constraint.Constraints, n int, elem func(Encoder, int) error) error

	// EncodeExplicitPrefix wraps the inner callback's output behind an
	// additional outer tag without replacing the inner value's own tag.
	EncodeExplicitPrefix(t tag.Tag, inner func(Encoder) error) error

	// CustomError wraps msg in the format's own error representation.
	CustomError(msg string) error
}

// Decodable is the contract a data type implements to be decoded from any
// wire format.
//
// DecodeWithTag is the operation every type must define; it drives exactly
// one primitive read on the engine. Decode normally forwards to
// DecodeWithTag with the type's default tag; only types whose tag is not
// statically known, such as a CHOICE, resolve the tag inside Decode
// itself.
type Decodable interface {
	Decode(d Decoder) error
	DecodeWithTag(d Decoder, t tag.Tag) error
}

// Encodable is the contract a data type implements to be encoded to any
// wire format, the mirror of Decodable. AsnTag reports the type's
// compile-time default tag.
type Encodable interface {
	AsnTag() tag.Tag
	Encode(e Encoder) error
	EncodeWithTag(e Encoder, t tag.Tag) error
}

// DecodablePtr constrains P to a pointer to T implementing Decodable,
// letting entry points allocate the value and decode into it.
type DecodablePtr[T any] interface {
	*T
	Decodable
}
