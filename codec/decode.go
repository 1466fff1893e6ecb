package codec

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

// DecodeFunc decodes one value of type T from d under an expected tag.
// It is the shape taken by the tag-generic combinators (optional,
// implicit) so that retagging a field never changes its decode logic.
type DecodeFunc[T any] func(d Decoder, t tag.Tag) (T, error)

// ElemDecodeFunc decodes one value of type T through its default decode
// path, used for list elements and explicitly-tagged inner values.
type ElemDecodeFunc[T any] func(d Decoder) (T, error)

// Integer constrains the fixed-width and pointer-width integer types that
// decode by narrowing an unconstrained arbitrary-precision integer.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Decode decodes a value of type T from d through its default decode
// path.
func Decode[T any, P DecodablePtr[T]](d Decoder) (T, error) {
	var v T
	if err := P(&v).Decode(d); err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// DecodeInt decodes an unconstrained integer and narrows it into T with a
// range check. A failed narrowing surfaces through the engine's own error
// representation, never as a panic.
func DecodeInt[T Integer](d Decoder, t tag.Tag) (T, error) {
	n, err := d.DecodeInteger(t, constraint.None)
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := narrowInt[T](n)
	if !ok {
		var zero T
		return zero, d.CustomError(fmt.Sprintf("integer %s overflows %d-bit target", n, intBits[T]()))
	}

	return v, nil
}

// narrowInt converts an arbitrary-precision integer into T, reporting
// false when the value does not fit.
func narrowInt[T Integer](n *big.Int) (T, bool) {
	var zero, one T
	signed := zero-one < zero

	if signed {
		if !n.IsInt64() {
			return zero, false
		}
		i := n.Int64()
		v := T(i)
		if int64(v) != i {
			return zero, false
		}

		return v, true
	}

	if n.Sign() < 0 || !n.IsUint64() {
		return zero, false
	}
	u := n.Uint64()
	v := T(u)
	if uint64(v) != u {
		return zero, false
	}

	return v, true
}

// intBits returns the bit width of T, for error messages.
func intBits[T Integer]() int {
	var zero, one T
	bits := 0
	if zero-one < zero {
		// Signed: shifting 1 left falls off the top after width steps.
		for v := one; v != 0; v <<= 1 {
			bits++
		}

		return bits
	}
	for v := ^T(0); v != 0; v >>= 1 {
		bits++
	}

	return bits
}

// DecodeOptional decodes an optional member: if the engine reports the
// member present it decodes T and returns a non-nil pointer, otherwise it
// returns nil without consuming anything belonging to the next field.
// This is the single mechanism by which every optional aggregate member
// is decoded in one forward pass with no backtracking.
func DecodeOptional[T any](d Decoder, t tag.Tag, fn DecodeFunc[T]) (*T, error) {
	present, err := d.DecodeOptionFlag(t)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}

	v, err := fn(d, t)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// DecodeSequenceOf decodes an ordered homogeneous list, each element
// through its default decode path.
func DecodeSequenceOf[T any](d Decoder, t tag.Tag, c constraint.Constraints, elem ElemDecodeFunc[T]) ([]T, error) {
	var out []T
	err := d.DecodeSequenceOf(t, c, func(ed Decoder) error {
		v, err := elem(ed)
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DecodeSetOf decodes a SET OF into ascending order under cmp with
// duplicates collapsed, regardless of the order elements arrived in.
func DecodeSetOf[T any](d Decoder, t tag.Tag, c constraint.Constraints, elem ElemDecodeFunc[T], cmp func(a, b T) int) ([]T, error) {
	var out []T
	err := d.DecodeSetOf(t, c, func(ed Decoder) error {
		v, err := elem(ed)
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, cmp)
	out = slices.CompactFunc(out, func(a, b T) bool { return cmp(a, b) == 0 })

	return out, nil
}

// DecodeImplicit decodes a value under a replacement tag: the same decode
// logic runs, only the expected tag differs.
func DecodeImplicit[T any](d Decoder, t tag.Tag, fn DecodeFunc[T]) (T, error) {
	return fn(d, t)
}

// DecodeExplicit decodes a value wrapped behind an additional outer tag:
// the wrapper is consumed and the inner value decodes through its default
// path.
func DecodeExplicit[T any](d Decoder, t tag.Tag, fn ElemDecodeFunc[T]) (T, error) {
	inner, err := d.DecodeExplicitPrefix(t)
	if err != nil {
		var zero T
		return zero, err
	}

	return fn(inner)
}

// DecodeOpen decodes one value of unknown type: the tag is discovered by
// lookahead and the span is retained undecoded.
func DecodeOpen(d Decoder) (value.Open, error) {
	pt, err := d.PeekTag()
	if err != nil {
		return value.Open{}, err
	}

	contents, err := d.DecodeAny(pt)
	if err != nil {
		return value.Open{}, err
	}

	return value.Open{Tag: pt, Contents: contents}, nil
}

// DecodeFieldMap decodes an aggregate of unrecognized members: it enters a
// SEQUENCE scope and decodes open values one at a time until the scope is
// exhausted, keying each by its own discovered tag. Failing to decode one
// more open value ends the loop rather than failing the call; that is what
// makes lossless passthrough of unknown members possible.
//
// Tagless formats carry no such aggregate at all (EncodeFieldMap emits
// nothing for them), so the result is an empty map with no input consumed.
func DecodeFieldMap(d Decoder, t tag.Tag) (*value.FieldMap, error) {
	m := &value.FieldMap{}
	if !d.CarriesTags() {
		return m, nil
	}

	sub, err := d.DecodeSequence(t)
	if err != nil {
		return nil, err
	}
	for {
		open, err := DecodeOpen(sub)
		if err != nil {
			break
		}
		m.Insert(open)
	}

	return m, nil
}
