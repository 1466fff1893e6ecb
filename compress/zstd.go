package compress

// ZstdCodec provides Zstandard compression, the best-ratio choice for
// messages that travel rarely or get archived. Builds with cgo use the
// libzstd bindings; pure-Go builds fall back to the klauspost
// implementation with identical framing, so the two interoperate.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
