package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
)

type InitInstructionAccounts struct {
	SuperAdmin ed25519.PublicKey
	Admin      ed25519.PublicKey
	Investor   ed25519.PublicKey
	UsdcMint   ed25519.PublicKey
	VrfProgram ed25519.PublicKey
}

// NewInitInstruction creates the protocol vaults and the latest epoch account.
func NewInitInstruction(program ed25519.PublicKey, accounts *InitInstructionAccounts) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"super admin", accounts.SuperAdmin},
		namedKey{"admin", accounts.Admin},
		namedKey{"investor", accounts.Investor},
		namedKey{"usdc mint", accounts.UsdcMint},
		namedKey{"vrf program", accounts.VrfProgram},
	); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	depositVault := r.keep(GetDepositVaultAddress(program))
	treasuryVault := r.keep(GetTreasuryVaultAddress(program))
	insuranceVault := r.keep(GetInsuranceVaultAddress(program))
	tier1PrizeVault := r.keep(GetPrizeVaultAddress(program, 1))
	tier2PrizeVault := r.keep(GetPrizeVaultAddress(program, 2))
	tier3PrizeVault := r.keep(GetPrizeVaultAddress(program, 3))
	pendingDepositVault := r.keep(GetPendingDepositVaultAddress(program))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeInit,
		nil,
		solana.WritableSigner(accounts.SuperAdmin),
		solana.Readonly(accounts.Admin),
		solana.Readonly(accounts.Investor),
		solana.Readonly(accounts.UsdcMint),
		solana.Readonly(vaultAuthority),
		solana.Writable(depositVault),
		solana.Writable(treasuryVault),
		solana.Writable(insuranceVault),
		solana.Writable(tier1PrizeVault),
		solana.Writable(tier2PrizeVault),
		solana.Writable(tier3PrizeVault),
		solana.Writable(pendingDepositVault),
		solana.Writable(latestEpoch),
		solana.Readonly(accounts.VrfProgram),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}
