package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type CreateEpochInstructionAccounts struct {
	Admin ed25519.PublicKey
}

type CreateEpochInstructionArgs struct {
	// Epoch is the index of the epoch being created.
	Epoch uint64

	// ExpectedEndAt is a unix timestamp in seconds.
	ExpectedEndAt int64
	YieldSplitCfg YieldSplitCfg
}

func NewCreateEpochInstruction(
	program ed25519.PublicKey,
	accounts *CreateEpochInstructionAccounts,
	args *CreateEpochInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
	); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeCreateEpoch,
		binary.Concat(
			binary.Int64(args.ExpectedEndAt),
			args.YieldSplitCfg.encode(),
		),
		solana.WritableSigner(accounts.Admin),
		solana.Writable(epoch),
		solana.Writable(latestEpoch),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}
