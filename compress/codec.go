// Package compress provides optional payload compression for encoded
// messages.
//
// Packed encodings are already dense, but messages carrying long octet
// strings or repetitive aggregates still benefit from a fast
// general-purpose compressor on the transport path. The codecs here
// operate on whole encoded messages: compress after encoding, decompress
// before decoding.
package compress

import (
	"fmt"

	"github.com/arloliu/asnpack/format"
)

// Compressor compresses one encoded message.
//
// The returned slice is newly allocated and owned by the caller; the
// input is never modified. Implementations may reuse internal buffers.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one encoded message compressed by the matching
// Compressor. It validates the compressed framing and returns an error
// for corrupted or mismatched input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All built-in codecs are stateless or
// internally pooled and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression
// type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
