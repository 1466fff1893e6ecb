package compress

// NoOpCodec passes data through unchanged. It exists so callers can treat
// "no compression" uniformly with the real codecs.
//
// Both directions return the input slice as-is without copying; callers
// must not modify the input afterwards if they use the result.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
