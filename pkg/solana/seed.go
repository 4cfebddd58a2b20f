package solana

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

// SeedKind identifies which variant a Seed holds.
type SeedKind uint8

const (
	SeedKindLiteral SeedKind = iota
	SeedKindKey
	SeedKindEncoded
)

// Seed is one component of an ordered program address seed list. It is
// either a literal ASCII tag, a raw public key, or pre-encoded bytes (usually
// a little-endian integer).
type Seed struct {
	kind  SeedKind
	value []byte
}

func LiteralSeed(tag string) Seed {
	return Seed{kind: SeedKindLiteral, value: []byte(tag)}
}

func KeySeed(key ed25519.PublicKey) Seed {
	return Seed{kind: SeedKindKey, value: key}
}

func EncodedSeed(b []byte) Seed {
	return Seed{kind: SeedKindEncoded, value: b}
}

func Uint8Seed(v uint8) Seed {
	return EncodedSeed(binary.Uint8(v))
}

func Uint32Seed(v uint32) Seed {
	return EncodedSeed(binary.Uint32(v))
}

func Uint64Seed(v uint64) Seed {
	return EncodedSeed(binary.Uint64(v))
}

func (s Seed) Kind() SeedKind {
	return s.kind
}

// Bytes returns a copy of the seed's raw bytes.
func (s Seed) Bytes() []byte {
	return append([]byte(nil), s.value...)
}

// FlattenSeeds converts an ordered seed list into the raw byte slices hashed
// by CreateProgramAddress.
func FlattenSeeds(seeds ...Seed) ([][]byte, error) {
	flattened := make([][]byte, len(seeds))
	for i, s := range seeds {
		if s.kind == SeedKindKey && len(s.value) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "seed %d: key has %d bytes", i, len(s.value))
		}
		flattened[i] = s.Bytes()
	}
	return flattened, nil
}
