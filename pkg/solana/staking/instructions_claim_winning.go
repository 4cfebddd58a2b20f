package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

const (
	ClaimWinningInstructionDataSize = (1 + // discriminator
		8 + // epoch
		4 + // page
		4 + // winner_index
		1) // tier
)

type ClaimWinningInstructionAccounts struct {
	Owner ed25519.PublicKey
}

type ClaimWinningInstructionArgs struct {
	Epoch       uint64
	Page        uint32
	WinnerIndex uint32
	Tier        uint8
}

// NewClaimWinningInstruction moves a winner's prize from the tier's prize
// vault into their stake. The owner does not need to sign.
func NewClaimWinningInstruction(
	program ed25519.PublicKey,
	accounts *ClaimWinningInstructionAccounts,
	args *ClaimWinningInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"owner", accounts.Owner},
	); err != nil {
		return solana.Instruction{}, err
	}
	if err := validateTier(args.Tier); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	winnersMeta := r.keep(GetEpochWinnersMetaAddress(program, args.Epoch))
	winnersPage := r.keep(GetEpochWinnersPageAddress(program, args.Epoch, args.Page))
	stake := r.keep(GetStakeAddress(program, accounts.Owner))
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	vaultAuthority := r.keep(GetVaultAuthorityAddress(program))
	prizeVault := r.keep(GetPrizeVaultAddress(program, args.Tier))
	depositVault := r.keep(GetDepositVaultAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeClaimWinning,
		binary.Concat(
			binary.Uint64(args.Epoch),
			binary.Uint32(args.Page),
			binary.Uint32(args.WinnerIndex),
			binary.Uint8(args.Tier),
		),
		solana.Readonly(accounts.Owner),
		solana.Writable(winnersMeta),
		solana.Writable(winnersPage),
		solana.Writable(stake),
		solana.Readonly(epoch),
		solana.Writable(latestEpoch),
		solana.Readonly(vaultAuthority),
		solana.Writable(prizeVault),
		solana.Writable(depositVault),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	), nil
}

func ClaimWinningInstructionArgsFromBinary(data []byte) (*ClaimWinningInstructionArgs, error) {
	if len(data) != ClaimWinningInstructionDataSize {
		return nil, errors.Wrapf(ErrInvalidInstructionData, "expected %d bytes, got %d", ClaimWinningInstructionDataSize, len(data))
	}

	t, err := GetInstructionType(data)
	if err != nil {
		return nil, err
	}
	if t != InstructionTypeClaimWinning {
		return nil, errors.Wrapf(ErrInvalidInstructionData, "unexpected instruction %s", t)
	}

	var args ClaimWinningInstructionArgs
	offset := 1
	for _, err := range []error{
		binary.GetUint64(data, &args.Epoch, &offset),
		binary.GetUint32(data, &args.Page, &offset),
		binary.GetUint32(data, &args.WinnerIndex, &offset),
		binary.GetUint8(data, &args.Tier, &offset),
	} {
		if err != nil {
			return nil, errors.Wrap(ErrInvalidInstructionData, err.Error())
		}
	}

	return &args, nil
}
