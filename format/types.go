// Package format defines the shared enums identifying wire rulesets and
// payload compression types.
package format

type (
	Ruleset         uint8
	CompressionType uint8
)

const (
	RulesetUPER Ruleset = 0x1 // RulesetUPER is the unaligned packed encoding rules variant.
	RulesetAPER Ruleset = 0x2 // RulesetAPER is the aligned packed encoding rules variant.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (r Ruleset) String() string {
	switch r {
	case RulesetUPER:
		return "UPER"
	case RulesetAPER:
		return "APER"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
