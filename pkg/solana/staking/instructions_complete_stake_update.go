package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
)

type CompleteStakeUpdateInstructionAccounts struct {
	Payer          ed25519.PublicKey
	Owner          ed25519.PublicKey
	OwnerUsdcToken ed25519.PublicKey
}

// NewCompleteStakeUpdateInstruction applies a queued stake update to the
// owner's stake. Anyone may pay for it.
func NewCompleteStakeUpdateInstruction(program ed25519.PublicKey, accounts *CompleteStakeUpdateInstructionAccounts) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"payer", accounts.Payer},
		namedKey{"owner", accounts.Owner},
		namedKey{"owner usdc token", accounts.OwnerUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	stakeUpdateRequest := r.keep(GetStakeUpdateRequestAddress(program, accounts.Owner))
	stake := r.keep(GetStakeAddress(program, accounts.Owner))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	pendingDepositVault := r.keep(GetPendingDepositVaultAddress(program))
	depositVault := r.keep(GetDepositVaultAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeCompleteStakeUpdate,
		nil,
		solana.WritableSigner(accounts.Payer),
		solana.Readonly(accounts.Owner),
		solana.Readonly(vaultAuthority),
		solana.Writable(stakeUpdateRequest),
		solana.Writable(stake),
		solana.Readonly(latestEpoch),
		solana.Writable(pendingDepositVault),
		solana.Writable(depositVault),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}
