// Package uper provides the top-level entry points for the unaligned
// packed encoding rules.
package uper

import (
	"fmt"

	"github.com/arloliu/asnpack/codec"
	"github.com/arloliu/asnpack/per"
)

// Encode serializes v to unaligned packed bytes.
func Encode(v codec.Encodable) ([]byte, error) {
	return EncodeFunc(v.Encode)
}

// EncodeFunc serializes whatever scope writes through the encoder,
// for callers driving the engine contract by hand.
func EncodeFunc(scope func(codec.Encoder) error) ([]byte, error) {
	enc, err := per.NewEncoder(per.WithUnaligned())
	if err != nil {
		return nil, err
	}

	if err := scope(enc); err != nil {
		enc.Finish()
		return nil, fmt.Errorf("uper encode: %w", err)
	}

	return enc.Finish(), nil
}

// Decode deserializes a value of type T from unaligned packed bytes.
func Decode[T any, P codec.DecodablePtr[T]](data []byte) (T, error) {
	var v T
	if err := DecodeFunc(data, P(&v).Decode); err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// DecodeFunc deserializes whatever scope reads through the decoder.
func DecodeFunc(data []byte, scope func(codec.Decoder) error) error {
	dec, err := per.NewDecoder(data, per.WithUnaligned())
	if err != nil {
		return err
	}

	if err := scope(dec); err != nil {
		return fmt.Errorf("uper decode: %w", err)
	}

	return nil
}
