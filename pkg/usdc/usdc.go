// Package usdc holds the USDC mint constants and converts between decimal
// amounts and quarks, the token's base unit.
package usdc

import (
	"crypto/ed25519"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	Mint          = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	QuarksPerUsdc = 1000000
	Decimals      = 6
)

var (
	TokenMint = ed25519.PublicKey{198, 250, 122, 243, 190, 219, 173, 58, 61, 101, 243, 106, 171, 201, 116, 49, 177, 187, 228, 194, 210, 246, 224, 228, 124, 166, 2, 3, 69, 47, 93, 97}
)

var ErrInvalidAmount = errors.New("invalid usdc amount")

// ToQuarks parses a decimal amount such as "12.5", "-3" or "100_000" into
// quarks.
func ToQuarks(s string) (int64, error) {
	negative := strings.HasPrefix(s, "-")
	whole, frac, _ := strings.Cut(strings.ReplaceAll(strings.TrimPrefix(s, "-"), "_", ""), ".")
	if whole == "" && frac == "" {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	if len(frac) > Decimals {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q has more than %d decimals", s, Decimals)
	}

	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	if strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}

	quarks, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || quarks > math.MaxInt64 {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q is out of range", s)
	}
	if negative {
		return -int64(quarks), nil
	}
	return int64(quarks), nil
}

// FromQuarks formats quarks as a decimal amount without trailing zeros.
func FromQuarks(quarks int64) string {
	sign := ""
	abs := uint64(quarks)
	if quarks < 0 {
		sign = "-"
		abs = -abs
	}

	s := fmt.Sprintf("%s%d.%06d", sign, abs/QuarksPerUsdc, abs%QuarksPerUsdc)
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}
