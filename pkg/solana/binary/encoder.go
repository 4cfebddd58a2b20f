// Package binary encodes scalar values into the little-endian layout expected
// by on-chain programs, and concatenates encoded fields into a payload.
package binary

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrOutOfRange indicates a value that cannot be represented by the target
// encoding width.
var ErrOutOfRange = errors.New("value out of encodable range")

// EncodeUint8 encodes x as a single byte. x must be in [0, 255].
func EncodeUint8(x int64) ([]byte, error) {
	if x < 0 || x > math.MaxUint8 {
		return nil, errors.Wrapf(ErrOutOfRange, "u8: %d", x)
	}
	return Uint8(uint8(x)), nil
}

// EncodeUint32 encodes x as 4 little-endian bytes. x must be in [0, 2^32-1].
func EncodeUint32(x int64) ([]byte, error) {
	if x < 0 || x > math.MaxUint32 {
		return nil, errors.Wrapf(ErrOutOfRange, "u32: %d", x)
	}
	return Uint32(uint32(x)), nil
}

// EncodeUint64 encodes x as 8 little-endian bytes. x must not be negative.
func EncodeUint64(x int64) ([]byte, error) {
	if x < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "u64: %d", x)
	}
	return Uint64(uint64(x)), nil
}

// EncodeInt64 encodes x as 8 little-endian two's complement bytes.
func EncodeInt64(x int64) []byte {
	return Int64(x)
}

func Uint8(v uint8) []byte {
	return []byte{v}
}

func Uint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func Uint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func Int64(v int64) []byte {
	return Uint64(uint64(v))
}

func Bool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// Bytes encodes b as a u32 little-endian length followed by the raw bytes,
// which is how Borsh lays out Vec<u8>.
func Bytes(b []byte) []byte {
	return Concat(Uint32(uint32(len(b))), b)
}

// String encodes s the same way as Bytes, matching Borsh's String layout.
func String(s string) []byte {
	return Bytes([]byte(s))
}

// Concat returns a new slice holding every part in order. The inputs are not
// modified, and the result never aliases them.
func Concat(parts ...[]byte) []byte {
	var size int
	for _, p := range parts {
		size += len(p)
	}

	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
