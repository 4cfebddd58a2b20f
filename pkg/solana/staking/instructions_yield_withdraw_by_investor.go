package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
)

type YieldWithdrawByInvestorInstructionAccounts struct {
	Admin             ed25519.PublicKey
	InvestorUsdcToken ed25519.PublicKey
}

type YieldWithdrawByInvestorInstructionArgs struct {
	Epoch       uint64
	TicketsInfo TicketsInfo
}

// NewYieldWithdrawByInvestorInstruction moves the epoch's deposits to the
// investor and records the epoch's ticket list.
func NewYieldWithdrawByInvestorInstruction(
	program ed25519.PublicKey,
	accounts *YieldWithdrawByInvestorInstructionAccounts,
	args *YieldWithdrawByInvestorInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
		namedKey{"investor usdc token", accounts.InvestorUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}
	if err := args.TicketsInfo.validate(); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	depositVault := r.keep(GetDepositVaultAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeYieldWithdrawByInvestor,
		args.TicketsInfo.encode(),
		solana.ReadonlySigner(accounts.Admin),
		solana.Writable(accounts.InvestorUsdcToken),
		solana.Writable(epoch),
		solana.Writable(latestEpoch),
		solana.Readonly(vaultAuthority),
		solana.Writable(depositVault),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}
