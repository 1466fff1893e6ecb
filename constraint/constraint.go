// Package constraint models the value-range and size bounds that drive
// minimal-width encoding in the packed wire formats.
//
// Constraints are attached at the decode/encode call site, not stored on
// values: the same integer decodes differently under different bounds, and
// the packed formats derive field widths (and length-determinant forms)
// purely from this metadata, so it is part of the wire contract.
package constraint

import (
	"fmt"
	"math/bits"
)

// Bound is one end of a range. The zero value is unbounded.
type Bound struct {
	Value int64
	Set   bool
}

// At creates a finite bound at v.
func At(v int64) Bound {
	return Bound{Value: v, Set: true}
}

// Range is an inclusive [Min, Max] interval over integer values or sizes.
// Either end may be unbounded. Extensible marks the range as carrying an
// ASN.1 extension marker; extensible ranges never qualify for
// constrained-width encoding.
type Range struct {
	Min        Bound
	Max        Bound
	Extensible bool
}

// Bounded reports whether both ends of the range are finite.
func (r Range) Bounded() bool {
	return r.Min.Set && r.Max.Set
}

// Exact returns the single value the range pins, if Min == Max and the
// range is not extensible. This is the case where the packed formats omit
// the length determinant entirely.
func (r Range) Exact() (int64, bool) {
	if r.Bounded() && !r.Extensible && r.Min.Value == r.Max.Value {
		return r.Min.Value, true
	}

	return 0, false
}

// Span returns the number of values in the range (max - min + 1).
// It reports false when either end is unbounded, the range is extensible,
// or the span overflows an int64.
func (r Range) Span() (int64, bool) {
	if !r.Bounded() || r.Extensible {
		return 0, false
	}

	span := r.Max.Value - r.Min.Value + 1
	if span <= 0 {
		// The interval covers more than 2^63-1 values; treat as unbounded.
		return 0, false
	}

	return span, true
}

// BitWidth returns ceil(log2(span)) - the exact number of bits a
// constrained whole number in this range occupies in the unaligned packed
// format. Zero bits when the range pins a single value. Reports false for
// unbounded or extensible ranges.
func (r Range) BitWidth() (int, bool) {
	span, ok := r.Span()
	if !ok {
		return 0, false
	}
	if span == 1 {
		return 0, true
	}

	return bits.Len64(uint64(span - 1)), true
}

// Contains reports whether v lies within the range, treating unbounded
// ends as infinite.
func (r Range) Contains(v int64) bool {
	if r.Min.Set && v < r.Min.Value {
		return false
	}
	if r.Max.Set && v > r.Max.Value {
		return false
	}

	return true
}

func (r Range) String() string {
	lo, hi := "MIN", "MAX"
	if r.Min.Set {
		lo = fmt.Sprintf("%d", r.Min.Value)
	}
	if r.Max.Set {
		hi = fmt.Sprintf("%d", r.Max.Value)
	}
	if r.Extensible {
		return fmt.Sprintf("[%s..%s,...]", lo, hi)
	}

	return fmt.Sprintf("[%s..%s]", lo, hi)
}

// Constraints bundles the value-range and size constraints that may apply
// to one decode or encode operation. The zero value is fully
// unconstrained.
type Constraints struct {
	// Value bounds the numeric value of an INTEGER or ENUMERATED.
	Value Range
	// Size bounds the element/octet/bit count of a string or aggregate.
	Size Range
}

// None is the fully unconstrained Constraints value.
var None = Constraints{}

// ValueRange creates constraints bounding a numeric value to [lo, hi].
// Panics if lo > hi; the bounds are fixed at compile time by the schema,
// so an inverted range is a programming error.
func ValueRange(lo, hi int64) Constraints {
	if lo > hi {
		panic(fmt.Sprintf("constraint: inverted value range [%d..%d]", lo, hi))
	}

	return Constraints{Value: Range{Min: At(lo), Max: At(hi)}}
}

// SizeRange creates constraints bounding a size to [lo, hi].
// Panics if lo > hi or lo < 0.
func SizeRange(lo, hi int64) Constraints {
	if lo > hi {
		panic(fmt.Sprintf("constraint: inverted size range [%d..%d]", lo, hi))
	}
	if lo < 0 {
		panic(fmt.Sprintf("constraint: negative size bound %d", lo))
	}

	return Constraints{Size: Range{Min: At(lo), Max: At(hi)}}
}

// SizeFixed creates constraints pinning a size to exactly n.
func SizeFixed(n int64) Constraints {
	return SizeRange(n, n)
}

// Extensible returns a copy of c with both ranges marked extensible.
func (c Constraints) Extensible() Constraints {
	c.Value.Extensible = true
	c.Size.Extensible = true

	return c
}
