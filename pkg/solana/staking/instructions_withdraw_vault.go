package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type WithdrawVaultInstructionAccounts struct {
	Admin       ed25519.PublicKey
	Destination ed25519.PublicKey
}

type WithdrawVaultInstructionArgs struct {
	Vault  WithdrawVault
	Amount int64
}

func NewWithdrawVaultInstruction(
	program ed25519.PublicKey,
	accounts *WithdrawVaultInstructionAccounts,
	args *WithdrawVaultInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
		namedKey{"destination", accounts.Destination},
	); err != nil {
		return solana.Instruction{}, err
	}

	amount, err := binary.EncodeUint64(args.Amount)
	if err != nil {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "amount: %v", err)
	}

	var r resolver
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	vault := r.keep(GetWithdrawVaultAddress(program, args.Vault))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeWithdrawVault,
		binary.Concat(binary.Uint8(uint8(args.Vault)), amount),
		solana.WritableSigner(accounts.Admin),
		solana.Readonly(vaultAuthority),
		solana.Writable(vault),
		solana.Writable(accounts.Destination),
		solana.Readonly(latestEpoch),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}
