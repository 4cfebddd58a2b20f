package binary

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrUnexpectedEnd is returned when a read runs past the end of the source.
var ErrUnexpectedEnd = errors.New("unexpected end of data")

func need(src []byte, offset, size int) error {
	if offset < 0 || len(src)-offset < size {
		return errors.Wrapf(ErrUnexpectedEnd, "need %d bytes at offset %d, have %d", size, offset, len(src))
	}
	return nil
}

func GetUint8(src []byte, dst *uint8, offset *int) error {
	if err := need(src, *offset, 1); err != nil {
		return err
	}
	*dst = src[*offset]
	*offset += 1
	return nil
}

func GetUint32(src []byte, dst *uint32, offset *int) error {
	if err := need(src, *offset, 4); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return nil
}

func GetUint64(src []byte, dst *uint64, offset *int) error {
	if err := need(src, *offset, 8); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return nil
}

func GetInt64(src []byte, dst *int64, offset *int) error {
	var v uint64
	if err := GetUint64(src, &v, offset); err != nil {
		return err
	}
	*dst = int64(v)
	return nil
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := need(src, *offset, ed25519.PublicKeySize); err != nil {
		return err
	}
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return nil
}
