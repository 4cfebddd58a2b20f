// Package shortvec implements the compact-u16 length prefix used by the
// transaction wire format.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedSize is the number of bytes needed to encode math.MaxUint16.
const MaxEncodedSize = 3

var (
	ErrLenTooLarge     = errors.Errorf("shortvec: len exceeds %d", math.MaxUint16)
	ErrInvalidEncoding = errors.New("shortvec: invalid encoding")
)

// AppendLen appends the encoding of n to dst.
func AppendLen(dst []byte, n int) ([]byte, error) {
	if n < 0 || n > math.MaxUint16 {
		return dst, ErrLenTooLarge
	}

	for n >= 0x80 {
		dst = append(dst, byte(n&0x7f)|0x80)
		n >>= 7
	}
	return append(dst, byte(n)), nil
}

// EncodeLen writes the encoding of n to w.
func EncodeLen(w io.Writer, n int) (int, error) {
	encoded, err := AppendLen(make([]byte, 0, MaxEncodedSize), n)
	if err != nil {
		return 0, err
	}
	return w.Write(encoded)
}

// DecodeLen reads an encoded len from r. Encodings with redundant trailing
// zero bytes are rejected.
func DecodeLen(r io.ByteReader) (int, error) {
	var n int
	for i := 0; i < MaxEncodedSize; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		n |= int(b&0x7f) << (7 * i)
		if b&0x80 != 0 {
			continue
		}

		if i > 0 && b == 0 {
			return 0, errors.Wrap(ErrInvalidEncoding, "alias encoding")
		}
		if n > math.MaxUint16 {
			return 0, ErrLenTooLarge
		}
		return n, nil
	}

	return 0, errors.Wrapf(ErrInvalidEncoding, "more than %d bytes", MaxEncodedSize)
}
