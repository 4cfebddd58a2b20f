package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type ApproveStakeUpdateInstructionAccounts struct {
	Admin ed25519.PublicKey
	Owner ed25519.PublicKey
}

type ApproveStakeUpdateInstructionArgs struct {
	// Amount must match the pending request.
	Amount int64
}

func NewApproveStakeUpdateInstruction(
	program ed25519.PublicKey,
	accounts *ApproveStakeUpdateInstructionAccounts,
	args *ApproveStakeUpdateInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
		namedKey{"owner", accounts.Owner},
	); err != nil {
		return solana.Instruction{}, err
	}
	if err := validateStakeUpdateAmount(args.Amount); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	stakeUpdateRequest := r.keep(GetStakeUpdateRequestAddress(program, accounts.Owner))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeApproveStakeUpdate,
		binary.Int64(args.Amount),
		solana.ReadonlySigner(accounts.Admin),
		solana.Readonly(accounts.Owner),
		solana.Writable(stakeUpdateRequest),
		solana.Readonly(latestEpoch),
	), nil
}
