// Package endian provides byte order utilities for binary encoding and
// decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a unified EndianEngine interface. The packed
// encoding rules are defined most-significant-bit first, so everything in
// this module runs on the big-endian engine; the little-endian engine is
// provided for callers embedding encoded messages in their own
// little-endian framing.
//
// The returned EndianEngine instances are immutable, stateless, and safe
// for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// It is satisfied by binary.BigEndian and binary.LittleEndian, so it is
// fully compatible with existing Go code while giving access to both
// read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine, the byte order of the
// packed wire formats.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
