// Package endian selects the byte order used to read and write multi-byte
// integers stored in a sparse memory.
//
// An EndianEngine is any value implementing both binary.ByteOrder and
// binary.AppendByteOrder, which binary.LittleEndian and binary.BigEndian do.
// The typed accessors of the memory package take an engine so the same image
// can be decoded for either target:
//
//	v, err := mem.ReadUint32(0x100, endian.GetBigEndianEngine())
//
// Engines are stateless and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

// EndianEngine reads, writes and appends fixed-size integers in one byte order.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Parse returns the engine for a byte order name. Accepted names are
// "little", "le", "big", "be" and "native", case-insensitive.
func Parse(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "little", "le":
		return GetLittleEndianEngine(), nil
	case "big", "be":
		return GetBigEndianEngine(), nil
	case "native":
		return GetNativeEngine(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}

// Name returns "little" or "big" for the standard engines and the String
// form of any other engine.
func Name(engine EndianEngine) string {
	switch engine {
	case binary.LittleEndian:
		return "little"
	case binary.BigEndian:
		return "big"
	default:
		return engine.String()
	}
}

// CheckEndianness reports the host byte order.
func CheckEndianness() binary.ByteOrder {
	var marker uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&marker))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}
