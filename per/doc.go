// Package per implements the bit-packed encoding engine: the packed
// encoding rules of X.691 in their aligned (APER) and unaligned (UPER)
// variants.
//
// The engine addresses output at bit granularity and omits tag and length
// framing wherever a declared constraint makes it redundant: a boolean is
// one bit, an integer constrained to [lo, hi] occupies exactly
// ceil(log2(hi-lo+1)) bits, and a size constraint that pins an exact
// length suppresses the length determinant entirely. Because of this, the
// constraint metadata passed at each call site is part of the wire
// contract: the decoder selects the identical determinant form the
// encoder selected, purely from the same constraints.
//
// Encoder and Decoder implement the codec engine contracts; most users
// reach them through the uper and aper entry-point packages.
//
// # Wire variant
//
// The aligned variant inserts zero padding up to the next octet boundary
// before specific field kinds (length determinants, wide constrained
// integers, string contents); the unaligned variant never pads. The two
// produce incompatible streams, so both peers must agree on the variant:
//
//	enc, _ := per.NewEncoder(per.WithAligned())
//
// # Limits
//
// Tags are not encoded, so PeekTag and open-type lookahead report an
// error; open-type tagging is an acknowledged future extension of the
// engine surface. Extension-addition semantics are likewise not
// implemented: extensible constraints simply fall back to unconstrained
// encodings.
package per
