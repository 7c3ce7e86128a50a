// Package endian provides byte order utilities for serializing UTF-16 code
// units.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine, and uses it to convert between code units and
// UTF-16LE or UTF-16BE bytes.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	data := endian.AppendUnits(engine, nil, units) // UTF-16LE
//
//	units, err := endian.DecodeUnits(engine, data)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/arloliu/textcodec/errs"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
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

// AppendUnits appends units to dst, two bytes per code unit in engine's
// byte order.
func AppendUnits(engine EndianEngine, dst []byte, units []uint16) []byte {
	dst = growBytes(dst, len(units)*2)
	for _, u := range units {
		dst = engine.AppendUint16(dst, u)
	}

	return dst
}

// DecodeUnits reads code units from b in engine's byte order.
//
// Returns errs.ErrOddUnitData if len(b) is odd.
func DecodeUnits(engine EndianEngine, b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrOddUnitData, len(b))
	}

	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = engine.Uint16(b[i*2:])
	}

	return units, nil
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}

	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}
