package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

func validateKey(name string, key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidArgument, "%s must be %d bytes, got %d", name, ed25519.PublicKeySize, len(key))
	}
	return nil
}

type namedKey struct {
	name string
	key  ed25519.PublicKey
}

func validateKeys(keys ...namedKey) error {
	for _, k := range keys {
		if err := validateKey(k.name, k.key); err != nil {
			return err
		}
	}
	return nil
}

func validateTier(tier uint8) error {
	if tier < MinTier || tier > MaxTier {
		return errors.Wrapf(ErrInvalidArgument, "tier must be in [%d, %d], got %d", MinTier, MaxTier, tier)
	}
	return nil
}

// resolver derives program addresses for a single builder call, keeping the
// first failure so builders can check once after resolving everything.
type resolver struct {
	err error
}

func (r *resolver) keep(addr ed25519.PublicKey, err error) ed25519.PublicKey {
	if r.err != nil {
		return nil
	}
	if err != nil {
		r.err = err
		return nil
	}
	return addr
}

func newInstruction(program ed25519.PublicKey, t InstructionType, args []byte, accounts ...solana.AccountMeta) solana.Instruction {
	return solana.NewInstruction(
		program,
		binary.Concat(binary.Uint8(uint8(t)), args),
		accounts...,
	)
}
