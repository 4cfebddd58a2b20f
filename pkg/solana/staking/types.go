package staking

import (
	"crypto/ed25519"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/binary"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

const (
	MinTier = 1
	MaxTier = 3

	MaxWinnersPerPage = 10

	TicketsURLMaxLength  = 50
	TicketsHashMaxLength = 64

	USDCDecimals          = usdc.Decimals
	InternalDecimals      = 18
	TreasuryRatioDecimals = 3
)

// FixedPoint is the program's 192-bit unsigned fixed point number, stored as
// three little-endian u64 limbs. The number of decimals is implied by the
// field it is used in.
type FixedPoint [3]uint64

// NewFixedPoint returns a FixedPoint holding the raw (already scaled) value.
func NewFixedPoint(raw uint64) FixedPoint {
	return FixedPoint{raw, 0, 0}
}

// ParseFixedPoint parses an unsigned decimal string such as "0.5" or
// "100_000" into a FixedPoint with the given number of decimals.
func ParseFixedPoint(s string, decimals int) (FixedPoint, error) {
	whole, frac, _ := strings.Cut(strings.ReplaceAll(s, "_", ""), ".")
	if whole == "" && frac == "" {
		return FixedPoint{}, errors.Wrapf(ErrInvalidArgument, "invalid decimal %q", s)
	}
	if len(frac) > decimals {
		return FixedPoint{}, errors.Wrapf(ErrInvalidArgument, "%q has more than %d decimals", s, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	for _, c := range digits {
		if c < '0' || c > '9' {
			return FixedPoint{}, errors.Wrapf(ErrInvalidArgument, "invalid decimal %q", s)
		}
	}

	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || v.BitLen() > 192 {
		return FixedPoint{}, errors.Wrapf(ErrInvalidArgument, "%q does not fit in 192 bits", s)
	}

	var f FixedPoint
	mask := new(big.Int).SetUint64(math.MaxUint64)
	for i := range f {
		f[i] = new(big.Int).And(v, mask).Uint64()
		v.Rsh(v, 64)
	}
	return f, nil
}

func (f FixedPoint) encode() []byte {
	return binary.Concat(binary.Uint64(f[0]), binary.Uint64(f[1]), binary.Uint64(f[2]))
}

type InsuranceCfg struct {
	Premium     FixedPoint // USDC decimals
	Probability FixedPoint // internal decimals
}

// YieldSplitCfg configures how the yield of an epoch is split between the
// jackpot, insurance, treasury and the lower prize tiers.
type YieldSplitCfg struct {
	Jackpot         FixedPoint // USDC decimals
	Insurance       InsuranceCfg
	TreasuryRatio   FixedPoint // treasury ratio decimals
	Tier2PrizeShare uint8
	Tier3PrizeShare uint8
}

func (c *YieldSplitCfg) encode() []byte {
	return binary.Concat(
		c.Jackpot.encode(),
		c.Insurance.Premium.encode(),
		c.Insurance.Probability.encode(),
		c.TreasuryRatio.encode(),
		binary.Uint8(c.Tier2PrizeShare),
		binary.Uint8(c.Tier3PrizeShare),
	)
}

// TicketsInfo points at the off-chain ticket list of an epoch.
type TicketsInfo struct {
	NumTickets uint64
	URL        string
	Hash       []byte
	Version    uint8
}

func (t *TicketsInfo) validate() error {
	if len(t.URL) > TicketsURLMaxLength {
		return errors.Wrapf(ErrInvalidArgument, "tickets url exceeds %d bytes", TicketsURLMaxLength)
	}
	if len(t.Hash) > TicketsHashMaxLength {
		return errors.Wrapf(ErrInvalidArgument, "tickets hash exceeds %d bytes", TicketsHashMaxLength)
	}
	return nil
}

func (t *TicketsInfo) encode() []byte {
	return binary.Concat(
		binary.Uint64(t.NumTickets),
		binary.String(t.URL),
		binary.Bytes(t.Hash),
		binary.Uint8(t.Version),
	)
}

type TierWinnersMetaInput struct {
	TotalNumWinners        uint32
	TotalNumWinningTickets uint32
}

type CreateEpochWinnersMetaArgs struct {
	Tier1 TierWinnersMetaInput
	Tier2 TierWinnersMetaInput
	Tier3 TierWinnersMetaInput
}

func (a *CreateEpochWinnersMetaArgs) encode() []byte {
	var parts [][]byte
	for _, tier := range []TierWinnersMetaInput{a.Tier1, a.Tier2, a.Tier3} {
		parts = append(parts,
			binary.Uint32(tier.TotalNumWinners),
			binary.Uint32(tier.TotalNumWinningTickets),
		)
	}
	return binary.Concat(parts...)
}

// WinnerInput is one entry of a published winners page.
type WinnerInput struct {
	Index             uint32
	Address           ed25519.PublicKey
	Tier              uint8
	NumWinningTickets uint32
}

func (w *WinnerInput) encode() []byte {
	return binary.Concat(
		binary.Uint32(w.Index),
		w.Address,
		binary.Uint8(w.Tier),
		binary.Uint32(w.NumWinningTickets),
	)
}

// WithdrawVault selects which protocol vault an admin withdraws from.
type WithdrawVault uint8

const (
	WithdrawVaultInsurance WithdrawVault = iota
	WithdrawVaultTreasury
)

func (v WithdrawVault) String() string {
	switch v {
	case WithdrawVaultInsurance:
		return "insurance"
	case WithdrawVaultTreasury:
		return "treasury"
	}
	return "unknown"
}

// RotateKeyType selects which protocol key is rotated.
type RotateKeyType uint8

const (
	RotateKeyTypeSuperAdmin RotateKeyType = iota
	RotateKeyTypeAdmin
	RotateKeyTypeInvestor
)

func (t RotateKeyType) String() string {
	switch t {
	case RotateKeyTypeSuperAdmin:
		return "super-admin"
	case RotateKeyTypeAdmin:
		return "admin"
	case RotateKeyTypeInvestor:
		return "investor"
	}
	return "unknown"
}
