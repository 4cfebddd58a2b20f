package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

const (
	// discriminator + i64 amount
	StakeUpdateInstructionDataSize = 1 + 8
)

type RequestStakeUpdateInstructionAccounts struct {
	Owner          ed25519.PublicKey
	OwnerUsdcToken ed25519.PublicKey
}

type RequestStakeUpdateInstructionArgs struct {
	// Amount is positive for deposits and negative for withdrawals.
	Amount int64
}

// NewRequestStakeUpdateInstruction queues a deposit or withdrawal for admin
// approval.
func NewRequestStakeUpdateInstruction(
	program ed25519.PublicKey,
	accounts *RequestStakeUpdateInstructionAccounts,
	args *RequestStakeUpdateInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"owner", accounts.Owner},
		namedKey{"owner usdc token", accounts.OwnerUsdcToken},
	); err != nil {
		return solana.Instruction{}, err
	}
	if err := validateStakeUpdateAmount(args.Amount); err != nil {
		return solana.Instruction{}, err
	}

	var r resolver
	stake := r.keep(GetStakeAddress(program, accounts.Owner))
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	stakeUpdateRequest := r.keep(GetStakeUpdateRequestAddress(program, accounts.Owner))
	pendingDepositVault := r.keep(GetPendingDepositVaultAddress(program))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypeRequestStakeUpdate,
		binary.Int64(args.Amount),
		solana.WritableSigner(accounts.Owner),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Readonly(stake),
		solana.Readonly(latestEpoch),
		solana.Writable(stakeUpdateRequest),
		solana.Writable(pendingDepositVault),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}

// NewDepositInstruction requests a deposit of amount, which must be positive.
func NewDepositInstruction(program ed25519.PublicKey, accounts *RequestStakeUpdateInstructionAccounts, amount int64) (solana.Instruction, error) {
	if amount <= 0 {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "deposit amount must be positive, got %d", amount)
	}
	return NewRequestStakeUpdateInstruction(program, accounts, &RequestStakeUpdateInstructionArgs{Amount: amount})
}

// NewWithdrawInstruction requests a withdrawal of amount, which must be
// positive. It is sent to the program as a negative stake update.
func NewWithdrawInstruction(program ed25519.PublicKey, accounts *RequestStakeUpdateInstructionAccounts, amount int64) (solana.Instruction, error) {
	if amount <= 0 {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "withdraw amount must be positive, got %d", amount)
	}
	return NewRequestStakeUpdateInstruction(program, accounts, &RequestStakeUpdateInstructionArgs{Amount: -amount})
}

// StakeUpdateAmountFromBinary decodes the amount of a request, approve or
// cancel stake update payload.
func StakeUpdateAmountFromBinary(data []byte) (InstructionType, int64, error) {
	if len(data) != StakeUpdateInstructionDataSize {
		return 0, 0, errors.Wrapf(ErrInvalidInstructionData, "expected %d bytes, got %d", StakeUpdateInstructionDataSize, len(data))
	}

	t, err := GetInstructionType(data)
	if err != nil {
		return 0, 0, err
	}
	switch t {
	case InstructionTypeRequestStakeUpdate, InstructionTypeApproveStakeUpdate, InstructionTypeCancelStakeUpdate:
	default:
		return 0, 0, errors.Wrapf(ErrInvalidInstructionData, "%s is not a stake update instruction", t)
	}

	var amount int64
	offset := 1
	if err := binary.GetInt64(data, &amount, &offset); err != nil {
		return 0, 0, errors.Wrap(ErrInvalidInstructionData, err.Error())
	}
	return t, amount, nil
}

func validateStakeUpdateAmount(amount int64) error {
	if amount == 0 {
		return errors.Wrap(ErrInvalidArgument, "stake update amount must not be zero")
	}
	return nil
}
