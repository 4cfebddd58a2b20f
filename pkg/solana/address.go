package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	// ErrInvalidPublicKey is returned when the seeds hash to a point on the
	// ed25519 curve, or when a program id is malformed.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrDerivationExhausted is returned when no bump seed yields an
	// off-curve program address.
	ErrDerivationExhausted = errors.New("unable to find a viable program address bump seed")
)

// onCurve reports whether b decodes as a compressed Edwards point. x/crypto
// keeps point decoding internal, so the jdgcs fork is used.
var onCurve = func(b *[32]byte) bool {
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(b)
}

// CreateProgramAddress hashes the seeds together with the program id. The
// result only counts as a program address when it has no private key, i.e.
// when it is off the ed25519 curve. Otherwise ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, errors.Wrapf(ErrTooManySeeds, "%d seeds", len(seeds))
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, errors.Wrapf(ErrMaxSeedLengthExceeded, "seed %d has %d bytes", i, len(s))
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(pdaMarker))

	var addr [32]byte
	h.Sum(addr[:0])

	if onCurve(&addr) {
		return nil, ErrInvalidPublicKey
	}
	return addr[:], nil
}

// FindProgramAddressAndBump returns the canonical program address for the
// seeds and the bump seed that produced it. Bumps are tried from 255 down to
// 1; bump 0 is never used, matching the runtime.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	bump := []byte{0}
	withBump := append(append(make([][]byte, 0, len(seeds)+1), seeds...), bump)

	for b := math.MaxUint8; b > 0; b-- {
		bump[0] = uint8(b)

		addr, err := CreateProgramAddress(program, withBump...)
		switch {
		case err == nil:
			return addr, bump[0], nil
		case !errors.Is(err, ErrInvalidPublicKey):
			return nil, 0, err
		}
	}

	return nil, 0, ErrDerivationExhausted
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	addr, _, err := FindProgramAddressAndBump(program, seeds...)
	return addr, err
}

// DeriveAddress flattens the typed seeds and returns the canonical program
// address for them. The bump seed is discarded.
func DeriveAddress(program ed25519.PublicKey, seeds ...Seed) (ed25519.PublicKey, error) {
	if len(program) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "program id has %d bytes", len(program))
	}

	flattened, err := FlattenSeeds(seeds...)
	if err != nil {
		return nil, err
	}

	return FindProgramAddress(program, flattened...)
}
