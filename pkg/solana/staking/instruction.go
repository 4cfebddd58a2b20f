package staking

import (
	"fmt"

	"github.com/pkg/errors"
)

// InstructionType is the leading byte of every staking instruction payload.
//
// Values are fixed by the deployed program. Retired instructions keep their
// slot and must never be reused or renumbered.
type InstructionType uint8

const (
	InstructionTypeInit                    InstructionType = 0
	InstructionTypeRequestStakeUpdate      InstructionType = 1
	InstructionTypeApproveStakeUpdate      InstructionType = 2
	InstructionTypeCancelStakeUpdate       InstructionType = 3
	InstructionTypeRemoved3                InstructionType = 4
	InstructionTypeRemoved4                InstructionType = 5
	InstructionTypeCreateEpoch             InstructionType = 6
	InstructionTypeRemoved1                InstructionType = 7
	InstructionTypeRemoved5                InstructionType = 8
	InstructionTypeClaimWinning            InstructionType = 9
	InstructionTypeYieldWithdrawByInvestor InstructionType = 10
	InstructionTypeYieldDepositByInvestor  InstructionType = 11
	InstructionTypeFundJackpot             InstructionType = 12
	InstructionTypeRemoved2                InstructionType = 13
	InstructionTypeFranciumInit            InstructionType = 14
	InstructionTypeFranciumInvest          InstructionType = 15
	InstructionTypeFranciumWithdraw        InstructionType = 16
	InstructionTypeWithdrawVault           InstructionType = 17
	InstructionTypeCompleteStakeUpdate     InstructionType = 18
	InstructionTypeCreateEpochWinnersMeta  InstructionType = 19
	InstructionTypePublishWinners          InstructionType = 20
	InstructionTypeRotateKey               InstructionType = 21
)

var instructionTypeNames = map[InstructionType]string{
	InstructionTypeInit:                    "Init",
	InstructionTypeRequestStakeUpdate:      "RequestStakeUpdate",
	InstructionTypeApproveStakeUpdate:      "ApproveStakeUpdate",
	InstructionTypeCancelStakeUpdate:       "CancelStakeUpdate",
	InstructionTypeRemoved3:                "Removed3",
	InstructionTypeRemoved4:                "Removed4",
	InstructionTypeCreateEpoch:             "CreateEpoch",
	InstructionTypeRemoved1:                "Removed1",
	InstructionTypeRemoved5:                "Removed5",
	InstructionTypeClaimWinning:            "ClaimWinning",
	InstructionTypeYieldWithdrawByInvestor: "YieldWithdrawByInvestor",
	InstructionTypeYieldDepositByInvestor:  "YieldDepositByInvestor",
	InstructionTypeFundJackpot:             "FundJackpot",
	InstructionTypeRemoved2:                "Removed2",
	InstructionTypeFranciumInit:            "FranciumInit",
	InstructionTypeFranciumInvest:          "FranciumInvest",
	InstructionTypeFranciumWithdraw:        "FranciumWithdraw",
	InstructionTypeWithdrawVault:           "WithdrawVault",
	InstructionTypeCompleteStakeUpdate:     "CompleteStakeUpdate",
	InstructionTypeCreateEpochWinnersMeta:  "CreateEpochWinnersMeta",
	InstructionTypePublishWinners:          "PublishWinners",
	InstructionTypeRotateKey:               "RotateKey",
}

func (t InstructionType) String() string {
	if name, ok := instructionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("InstructionType(%d)", uint8(t))
}

// IsRemoved reports whether the discriminant belongs to a retired instruction.
func (t InstructionType) IsRemoved() bool {
	switch t {
	case InstructionTypeRemoved1, InstructionTypeRemoved2, InstructionTypeRemoved3,
		InstructionTypeRemoved4, InstructionTypeRemoved5:
		return true
	}
	return false
}

// GetInstructionType returns the discriminant of an encoded staking
// instruction payload.
func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) == 0 {
		return 0, errors.Wrap(ErrInvalidInstructionData, "empty payload")
	}

	t := InstructionType(data[0])
	if _, ok := instructionTypeNames[t]; !ok {
		return 0, errors.Wrapf(ErrInvalidInstructionData, "unknown instruction type %d", data[0])
	}
	return t, nil
}
