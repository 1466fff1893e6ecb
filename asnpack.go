// Package asnpack provides a codec framework for ASN.1 values over the
// packed encoding rules (X.691), in both the unaligned (UPER) and aligned
// (APER) wire variants.
//
// The framework separates two concerns. Data types implement the codec
// package's Decode/Encode contracts - typically through generated code
// that drives one engine primitive per field - without knowing which wire
// format is in use. Wire formats implement the engine contracts; the per
// package supplies the packed engine, which addresses output at bit
// granularity and omits framing wherever a declared constraint makes it
// redundant.
//
// # Basic Usage
//
// Encoding and decoding a type implementing the codec contracts:
//
//	import "github.com/arloliu/asnpack"
//
//	data, err := asnpack.Marshal(format.RulesetUPER, &msg)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := asnpack.Unmarshal[Message](format.RulesetUPER, data)
//
// For fine-grained control (engine options, hand-driven scopes), use the
// uper, aper, and per packages directly.
//
// # Transport Helpers
//
// MarshalCompressed and UnmarshalCompressed run the encoded message
// through one of the compress package's codecs (Zstd, S2, LZ4), and
// Fingerprint returns a stable xxHash64 of an encoded message, usable as
// a dedup or cache key since packed encodings are canonical for a given
// variant.
package asnpack

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/asnpack/aper"
	"github.com/arloliu/asnpack/codec"
	"github.com/arloliu/asnpack/compress"
	"github.com/arloliu/asnpack/format"
	"github.com/arloliu/asnpack/uper"
)

// Marshal serializes v under the given ruleset.
func Marshal(rs format.Ruleset, v codec.Encodable) ([]byte, error) {
	switch rs {
	case format.RulesetUPER:
		return uper.Encode(v)
	case format.RulesetAPER:
		return aper.Encode(v)
	default:
		return nil, fmt.Errorf("unsupported ruleset: %s", rs)
	}
}

// Unmarshal deserializes a value of type T under the given ruleset.
func Unmarshal[T any, P codec.DecodablePtr[T]](rs format.Ruleset, data []byte) (T, error) {
	var zero T
	switch rs {
	case format.RulesetUPER:
		return uper.Decode[T, P](data)
	case format.RulesetAPER:
		return aper.Decode[T, P](data)
	default:
		return zero, fmt.Errorf("unsupported ruleset: %s", rs)
	}
}

// MarshalCompressed serializes v under the given ruleset and compresses
// the encoded message with the given compression type.
func MarshalCompressed(rs format.Ruleset, ct format.CompressionType, v codec.Encodable) ([]byte, error) {
	data, err := Marshal(rs, v)
	if err != nil {
		return nil, err
	}

	c, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return c.Compress(data)
}

// UnmarshalCompressed decompresses data with the given compression type
// and deserializes the result under the given ruleset.
func UnmarshalCompressed[T any, P codec.DecodablePtr[T]](rs format.Ruleset, ct format.CompressionType, data []byte) (T, error) {
	var zero T

	c, err := compress.GetCodec(ct)
	if err != nil {
		return zero, err
	}

	raw, err := c.Decompress(data)
	if err != nil {
		return zero, err
	}

	return Unmarshal[T, P](rs, raw)
}

// Fingerprint computes the xxHash64 of an encoded message. For a fixed
// ruleset the packed encoding of a value is canonical, so equal values
// yield equal fingerprints.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
