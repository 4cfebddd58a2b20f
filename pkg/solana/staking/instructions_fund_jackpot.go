package staking

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type FundJackpotInstructionAccounts struct {
	Funder          ed25519.PublicKey
	FunderUsdcToken ed25519.PublicKey
}

type FundJackpotInstructionArgs struct {
	Epoch uint64
}

// NewFundJackpotInstruction tops up the tier 1 prize vault when an epoch's
// jackpot was won but not fully covered.
func NewFundJackpotInstruction(
	program ed25519.PublicKey,
	accounts *FundJackpotInstructionAccounts,
	args *FundJackpotInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"funder", accounts.Funder},
		namedKey{"funder usdc token", accounts.FunderUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	winnersMeta := r.keep(GetEpochWinnersMetaAddress(program, args.Epoch))
	tier1PrizeVault := r.keep(GetPrizeVaultAddress(program, 1))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeFundJackpot,
		binary.Uint64(args.Epoch),
		solana.ReadonlySigner(accounts.Funder),
		solana.Writable(accounts.FunderUsdcToken),
		solana.Writable(epoch),
		solana.Writable(winnersMeta),
		solana.Writable(tier1PrizeVault),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}
