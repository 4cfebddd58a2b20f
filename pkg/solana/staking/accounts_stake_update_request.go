package staking

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
)

// AccountType is the leading byte of every account owned by the program.
type AccountType uint8

const (
	AccountTypeLatestEpoch AccountType = iota
	AccountTypeEpoch
	AccountTypeStake
	AccountTypeStakeUpdateRequest
	AccountTypeEpochWinnersMeta
	AccountTypeEpochWinnersPage
	AccountTypeVaultAuthority
	AccountTypeFranciumAuthority
	AccountTypeDepositVault
	AccountTypeTreasuryVault
	AccountTypeInsuranceVault
	AccountTypePendingDepositVault
	AccountTypeTier1PrizeVault
	AccountTypeTier2PrizeVault
	AccountTypeTier3PrizeVault

	AccountTypeNezhaVrfRequest AccountType = 100
)

var accountTypeNames = map[AccountType]string{
	AccountTypeLatestEpoch:         "LatestEpoch",
	AccountTypeEpoch:               "Epoch",
	AccountTypeStake:               "Stake",
	AccountTypeStakeUpdateRequest:  "StakeUpdateRequest",
	AccountTypeEpochWinnersMeta:    "EpochWinnersMeta",
	AccountTypeEpochWinnersPage:    "EpochWinnersPage",
	AccountTypeVaultAuthority:      "VaultAuthority",
	AccountTypeFranciumAuthority:   "FranciumAuthority",
	AccountTypeDepositVault:        "DepositVault",
	AccountTypeTreasuryVault:       "TreasuryVault",
	AccountTypeInsuranceVault:      "InsuranceVault",
	AccountTypePendingDepositVault: "PendingDepositVault",
	AccountTypeTier1PrizeVault:     "Tier1PrizeVault",
	AccountTypeTier2PrizeVault:     "Tier2PrizeVault",
	AccountTypeTier3PrizeVault:     "Tier3PrizeVault",
	AccountTypeNezhaVrfRequest:     "NezhaVrfRequest",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AccountType(%d)", uint8(t))
}

type StakeUpdateState uint8

const (
	// StakeUpdateStatePendingApproval waits on the admin's AML check.
	StakeUpdateStatePendingApproval StakeUpdateState = iota

	// StakeUpdateStateQueued is approved and waits for the epoch to be
	// running with funds available.
	StakeUpdateStateQueued
)

func (s StakeUpdateState) String() string {
	switch s {
	case StakeUpdateStatePendingApproval:
		return "PendingApproval"
	case StakeUpdateStateQueued:
		return "Queued"
	}
	return "Unknown"
}

const StakeUpdateRequestAccountSize = (1 + // account_type
	1 + // contract_version
	1 + // is_initialized
	32 + // owner
	8 + // amount
	1) // state

type stakeUpdateRequestLayout struct {
	AccountType     uint8
	ContractVersion uint8
	IsInitialized   bool
	Owner           [32]byte
	Amount          int64
	State           uint8
}

// StakeUpdateRequest is a pending deposit or withdrawal. A positive amount is
// a deposit and a negative amount is a withdrawal.
type StakeUpdateRequest struct {
	ContractVersion uint8
	IsInitialized   bool
	Owner           ed25519.PublicKey
	Amount          int64
	State           StakeUpdateState
}

func (r *StakeUpdateRequest) IsDeposit() bool {
	return r.Amount > 0
}

func (r *StakeUpdateRequest) Unmarshal(data []byte) error {
	if len(data) < StakeUpdateRequestAccountSize {
		return errors.Wrapf(ErrInvalidAccountData, "expected at least %d bytes, got %d", StakeUpdateRequestAccountSize, len(data))
	}

	var layout stakeUpdateRequestLayout
	if err := borsh.Deserialize(&layout, data[:StakeUpdateRequestAccountSize]); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}

	if AccountType(layout.AccountType) != AccountTypeStakeUpdateRequest {
		return errors.Wrapf(ErrInvalidAccountData, "unexpected account type %d", layout.AccountType)
	}

	r.ContractVersion = layout.ContractVersion
	r.IsInitialized = layout.IsInitialized
	r.Owner = make([]byte, ed25519.PublicKeySize)
	copy(r.Owner, layout.Owner[:])
	r.Amount = layout.Amount
	r.State = StakeUpdateState(layout.State)
	return nil
}

// GetStakeUpdateRequest fetches the owner's pending stake update request, if
// one exists.
func GetStakeUpdateRequest(
	ctx context.Context,
	client solana.Client,
	program, owner ed25519.PublicKey,
	commitment solana.Commitment,
) (*StakeUpdateRequest, error) {
	address, err := GetStakeUpdateRequestAddress(program, owner)
	if err != nil {
		return nil, err
	}

	info, err := client.GetAccountInfo(ctx, address, commitment)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, ErrStakeUpdateRequestNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get stake update request")
	}

	if !bytes.Equal(info.Owner, program) {
		return nil, errors.Wrap(ErrInvalidAccountData, "account is not owned by the staking program")
	}

	var req StakeUpdateRequest
	if err := req.Unmarshal(info.Data); err != nil {
		return nil, err
	}
	return &req, nil
}
