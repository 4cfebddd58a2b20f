package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type CancelStakeUpdateInstructionAccounts struct {
	Owner          ed25519.PublicKey
	OwnerUsdcToken ed25519.PublicKey

	// Admin signs instead of the owner when set.
	Admin ed25519.PublicKey
}

type CancelStakeUpdateInstructionArgs struct {
	// Amount must match the pending request.
	Amount int64
}

// NewCancelStakeUpdateInstruction cancels a pending stake update and refunds
// any pending deposit to the owner.
func NewCancelStakeUpdateInstruction(
	program ed25519.PublicKey,
	accounts *CancelStakeUpdateInstructionAccounts,
	args *CancelStakeUpdateInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"owner", accounts.Owner},
		namedKey{"owner usdc token", accounts.OwnerUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}

	signer := accounts.Owner
	if accounts.Admin != nil {
		if err := validateKey("admin", accounts.Admin); err != nil {
			return solana.Instruction{}, err
		}
		signer = accounts.Admin
	}

	if err := validateStakeUpdateAmount(args.Amount); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	stakeUpdateRequest := r.keep(GetStakeUpdateRequestAddress(program, accounts.Owner))
	pendingDepositVault := r.keep(GetPendingDepositVaultAddress(program))
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeCancelStakeUpdate,
		binary.Int64(args.Amount),
		solana.WritableSigner(signer),
		solana.Readonly(accounts.Owner),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Writable(stakeUpdateRequest),
		solana.Writable(pendingDepositVault),
		solana.Readonly(vaultAuthority),
		solana.Readonly(latestEpoch),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}
