package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
)

// Seed prefixes. The order in which they are combined for each address kind
// is part of the program's wire format.
const (
	StakingPrefix = "staking"

	LatestEpochPrefix        = "LATEST_EPOCH"
	EpochPrefix              = "EPOCH"
	TierWinnersPrefix        = "TIER_WINNERS"
	StakePrefix              = "STAKE"
	StakeUpdateRequestPrefix = "STAKE_UPDATE_REQUEST"
	StakingTicketPrefix      = "STAKING_TICKET"
	VaultAuthorityPrefix     = "VAULT_AUTHORITY"
	FranciumAuthorityPrefix  = "FRANCIUM_AUTHORITY"
	EpochWinnersMetaPrefix   = "EPOCH_WINNERS_META"
	EpochWinnersPagePrefix   = "EPOCH_WINNERS_PAGE"

	VaultPrefix               = "VAULT"
	DepositVaultPrefix        = "DEPOSIT"
	TreasuryVaultPrefix       = "TREASURY"
	InsuranceVaultPrefix      = "INSURANCE"
	PrizeVaultPrefix          = "PRIZE"
	PendingDepositVaultPrefix = "PENDING_DEPOSIT"

	VrfPrefix        = "NEZHA_VRF"
	VrfRequestPrefix = "VRF_REQUEST"
)

func deriveStakingAddress(program ed25519.PublicKey, seeds ...solana.Seed) (ed25519.PublicKey, error) {
	return solana.DeriveAddress(program, append([]solana.Seed{solana.LiteralSeed(StakingPrefix)}, seeds...)...)
}

func GetLatestEpochAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program, solana.LiteralSeed(LatestEpochPrefix))
}

func GetEpochAddress(program ed25519.PublicKey, epoch uint64) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(EpochPrefix),
		solana.Uint64Seed(epoch),
	)
}

func GetEpochTierWinnersAddress(program ed25519.PublicKey, epoch uint64, tier uint8) (ed25519.PublicKey, error) {
	if err := validateTier(tier); err != nil {
		return nil, err
	}

	return deriveStakingAddress(program,
		solana.LiteralSeed(EpochPrefix),
		solana.Uint64Seed(epoch),
		solana.LiteralSeed(TierWinnersPrefix),
		solana.Uint8Seed(tier),
	)
}

func GetStakeAddress(program, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	if err := validateKey("owner", owner); err != nil {
		return nil, err
	}

	return deriveStakingAddress(program,
		solana.LiteralSeed(StakePrefix),
		solana.KeySeed(owner),
	)
}

func GetStakeUpdateRequestAddress(program, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	if err := validateKey("owner", owner); err != nil {
		return nil, err
	}

	return deriveStakingAddress(program,
		solana.LiteralSeed(StakeUpdateRequestPrefix),
		solana.KeySeed(owner),
	)
}

func GetStakingTicketAddress(program ed25519.PublicKey, epoch uint64, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	if err := validateKey("owner", owner); err != nil {
		return nil, err
	}

	return deriveStakingAddress(program,
		solana.LiteralSeed(StakingTicketPrefix),
		solana.Uint64Seed(epoch),
		solana.KeySeed(owner),
	)
}

func GetVaultAuthorityAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program, solana.LiteralSeed(VaultAuthorityPrefix))
}

func GetFranciumAuthorityAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program, solana.LiteralSeed(FranciumAuthorityPrefix))
}

func GetDepositVaultAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(VaultPrefix),
		solana.LiteralSeed(DepositVaultPrefix),
	)
}

func GetTreasuryVaultAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(VaultPrefix),
		solana.LiteralSeed(TreasuryVaultPrefix),
	)
}

func GetInsuranceVaultAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(VaultPrefix),
		solana.LiteralSeed(InsuranceVaultPrefix),
	)
}

// GetPrizeVaultAddress returns the vault holding the prizes of a tier. Tier
// must be 1, 2 or 3.
func GetPrizeVaultAddress(program ed25519.PublicKey, tier uint8) (ed25519.PublicKey, error) {
	if err := validateTier(tier); err != nil {
		return nil, err
	}

	return deriveStakingAddress(program,
		solana.LiteralSeed(VaultPrefix),
		solana.LiteralSeed(PrizeVaultPrefix),
		solana.Uint8Seed(tier),
	)
}

func GetPendingDepositVaultAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(VaultPrefix),
		solana.LiteralSeed(PendingDepositVaultPrefix),
	)
}

func GetEpochWinnersMetaAddress(program ed25519.PublicKey, epoch uint64) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(EpochWinnersMetaPrefix),
		solana.Uint64Seed(epoch),
	)
}

func GetEpochWinnersPageAddress(program ed25519.PublicKey, epoch uint64, page uint32) (ed25519.PublicKey, error) {
	return deriveStakingAddress(program,
		solana.LiteralSeed(EpochWinnersPagePrefix),
		solana.Uint64Seed(epoch),
		solana.Uint32Seed(page),
	)
}

// GetVrfRequestAddress returns the randomness request account of an epoch.
// It is owned by the VRF program, not the staking program.
func GetVrfRequestAddress(vrfProgram ed25519.PublicKey, epoch uint64) (ed25519.PublicKey, error) {
	return solana.DeriveAddress(vrfProgram,
		solana.LiteralSeed(VrfPrefix),
		solana.LiteralSeed(VrfRequestPrefix),
		solana.Uint64Seed(epoch),
	)
}

// GetWithdrawVaultAddress maps a withdrawable vault to its address.
func GetWithdrawVaultAddress(program ed25519.PublicKey, vault WithdrawVault) (ed25519.PublicKey, error) {
	switch vault {
	case WithdrawVaultInsurance:
		return GetInsuranceVaultAddress(program)
	case WithdrawVaultTreasury:
		return GetTreasuryVaultAddress(program)
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown vault %d", vault)
	}
}
