package per

import "github.com/arloliu/asnpack/internal/options"

// EngineConfig holds the settings shared by the packed encoder and
// decoder. Both sides of a transfer must agree on the variant, since the
// two produce incompatible bit streams.
type EngineConfig struct {
	// Aligned selects the aligned variant, which pads to octet boundaries
	// before specific field kinds. The default is the unaligned variant,
	// which never pads.
	Aligned bool
}

// Option represents a functional option for configuring the packed
// engine. This is a type alias for the generic Option interface
// specialized for EngineConfig.
type Option = options.Option[*EngineConfig]

// WithAligned selects the aligned variant (APER).
func WithAligned() Option {
	return options.NoError(func(c *EngineConfig) {
		c.Aligned = true
	})
}

// WithUnaligned selects the unaligned variant (UPER), the default.
func WithUnaligned() Option {
	return options.NoError(func(c *EngineConfig) {
		c.Aligned = false
	})
}
