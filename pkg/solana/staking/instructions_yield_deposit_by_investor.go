package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type YieldDepositByInvestorInstructionAccounts struct {
	Investor          ed25519.PublicKey
	InvestorUsdcToken ed25519.PublicKey
}

type YieldDepositByInvestorInstructionArgs struct {
	Epoch        uint64
	ReturnAmount int64
}

// NewYieldDepositByInvestorInstruction returns the principal plus yield of an
// epoch, which the program splits across the protocol vaults.
func NewYieldDepositByInvestorInstruction(
	program ed25519.PublicKey,
	accounts *YieldDepositByInvestorInstructionAccounts,
	args *YieldDepositByInvestorInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"investor", accounts.Investor},
		namedKey{"investor usdc token", accounts.InvestorUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}

	amount, err := binary.EncodeUint64(args.ReturnAmount)
	if err != nil {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "return amount: %v", err)
	}

	var r resolver
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	depositVault := r.keep(GetDepositVaultAddress(program))
	treasuryVault := r.keep(GetTreasuryVaultAddress(program))
	insuranceVault := r.keep(GetInsuranceVaultAddress(program))
	tier2PrizeVault := r.keep(GetPrizeVaultAddress(program, 2))
	tier3PrizeVault := r.keep(GetPrizeVaultAddress(program, 3))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeYieldDepositByInvestor,
		amount,
		solana.ReadonlySigner(accounts.Investor),
		solana.Writable(accounts.InvestorUsdcToken),
		solana.Writable(epoch),
		solana.Writable(latestEpoch),
		solana.Writable(depositVault),
		solana.Writable(treasuryVault),
		solana.Writable(insuranceVault),
		solana.Writable(tier2PrizeVault),
		solana.Writable(tier3PrizeVault),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}
