package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type RotateKeyInstructionAccounts struct {
	SuperAdmin ed25519.PublicKey
	NewKey     ed25519.PublicKey
}

type RotateKeyInstructionArgs struct {
	KeyType RotateKeyType
}

func NewRotateKeyInstruction(
	program ed25519.PublicKey,
	accounts *RotateKeyInstructionAccounts,
	args *RotateKeyInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"super admin", accounts.SuperAdmin},
		namedKey{"new key", accounts.NewKey},
	); err != nil {
		return solana.Instruction{}, err
	}

	switch args.KeyType {
	case RotateKeyTypeSuperAdmin, RotateKeyTypeAdmin, RotateKeyTypeInvestor:
	default:
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "unknown key type %d", args.KeyType)
	}

	latestEpoch, err := GetLatestEpochAddress(program)
	if err != nil {
		return solana.Instruction{}, err
	}

	return newInstruction(
		program,
		InstructionTypeRotateKey,
		binary.Uint8(uint8(args.KeyType)),
		solana.ReadonlySigner(accounts.SuperAdmin),
		solana.Writable(latestEpoch),
		solana.Readonly(accounts.NewKey),
	), nil
}
