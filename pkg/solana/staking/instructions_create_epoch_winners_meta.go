package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
)

type CreateEpochWinnersMetaInstructionAccounts struct {
	Admin      ed25519.PublicKey
	VrfProgram ed25519.PublicKey
}

type CreateEpochWinnersMetaInstructionArgs struct {
	Epoch uint64
	Meta  CreateEpochWinnersMetaArgs
}

func NewCreateEpochWinnersMetaInstruction(
	program ed25519.PublicKey,
	accounts *CreateEpochWinnersMetaInstructionAccounts,
	args *CreateEpochWinnersMetaInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
		namedKey{"vrf program", accounts.VrfProgram},
	); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	winnersMeta := r.keep(GetEpochWinnersMetaAddress(program, args.Epoch))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	vrfRequest := r.keep(GetVrfRequestAddress(accounts.VrfProgram, args.Epoch))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeCreateEpochWinnersMeta,
		args.Meta.encode(),
		solana.WritableSigner(accounts.Admin),
		solana.Writable(winnersMeta),
		solana.Writable(latestEpoch),
		solana.Writable(epoch),
		solana.Readonly(vrfRequest),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}
