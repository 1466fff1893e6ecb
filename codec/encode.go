package codec

import (
	"math/big"
	"slices"

	"github.com/arloliu/asnpack/constraint"
	"github.com/arloliu/asnpack/tag"
	"github.com/arloliu/asnpack/value"
)

// EncodeFunc encodes one value of type T to e under an expected tag, the
// mirror of DecodeFunc.
type EncodeFunc[T any] func(e Encoder, t tag.Tag, v T) error

// ElemEncodeFunc encodes one value of type T through its default encode
// path.
type ElemEncodeFunc[T any] func(e Encoder, v T) error

// EncodeInt encodes a fixed-width integer as an unconstrained
// arbitrary-precision integer.
func EncodeInt[T Integer](e Encoder, t tag.Tag, v T) error {
	var zero, one T
	n := new(big.Int)
	if zero-one < zero {
		n.SetInt64(int64(v))
	} else {
		n.SetUint64(uint64(v))
	}

	return e.EncodeInteger(t, constraint.None, n)
}

// EncodeOptional encodes an optional member. An absent member contributes
// no field content; whether any presence framing exists at all is the
// engine's concern.
func EncodeOptional[T any](e Encoder, t tag.Tag, v *T, fn EncodeFunc[T]) error {
	if err := e.EncodeOptionFlag(t, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}

	return fn(e, t, *v)
}

// EncodeSequenceOf encodes an ordered homogeneous list, each element
// through its default encode path.
func EncodeSequenceOf[T any](e Encoder, t tag.Tag, c constraint.Constraints, items []T, elem ElemEncodeFunc[T]) error {
	return e.EncodeSequenceOf(t, c, len(items), func(ee Encoder, i int) error {
		return elem(ee, items[i])
	})
}

// EncodeSetOf encodes a SET OF deterministically: elements are sorted
// ascending under cmp and deduplicated before encoding, so equal sets
// always produce identical output.
func EncodeSetOf[T any](e Encoder, t tag.Tag, c constraint.Constraints, items []T, elem ElemEncodeFunc[T], cmp func(a, b T) int) error {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, cmp)
	sorted = slices.CompactFunc(sorted, func(a, b T) bool { return cmp(a, b) == 0 })

	return e.EncodeSetOf(t, c, len(sorted), func(ee Encoder, i int) error {
		return elem(ee, sorted[i])
	})
}

// EncodeImplicit encodes a value under a replacement tag.
func EncodeImplicit[T any](e Encoder, t tag.Tag, v T, fn EncodeFunc[T]) error {
	return fn(e, t, v)
}

// EncodeExplicit encodes a value behind an additional outer tag,
// preserving its own default-tagged encoding inside.
func EncodeExplicit[T any](e Encoder, t tag.Tag, v T, fn ElemEncodeFunc[T]) error {
	return e.EncodeExplicitPrefix(t, func(ie Encoder) error {
		return fn(ie, v)
	})
}

// EncodeFieldMap re-encodes retained unknown members in tag order,
// reproducing each member's span unchanged.
//
// Tagless formats cannot attribute an open value to its tag on decode, so
// a populated map is an error there rather than bits the reader would
// misparse; an empty map encodes to nothing, matching DecodeFieldMap.
func EncodeFieldMap(e Encoder, t tag.Tag, m *value.FieldMap) error {
	if !e.CarriesTags() {
		if m.Len() > 0 {
			return e.CustomError("unknown fields require a tag-carrying format")
		}

		return nil
	}

	return e.EncodeSequence(t, func(se Encoder) error {
		for tg, open := range m.All() {
			if err := se.EncodeAny(tg, open.Contents); err != nil {
				return err
			}
		}

		return nil
	})
}
