// Package staking builds instructions for, and derives the program addresses
// of, the Nezha no-loss lottery staking program.
package staking

import (
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/system"
	"github.com/nezha-game/staking-client/pkg/solana/token"
)

var (
	// ErrInvalidArgument is returned when a logical parameter is outside of
	// the domain the program accepts. No instruction is produced.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidAccountData         = errors.New("unexpected account data")
	ErrInvalidInstructionData     = errors.New("unexpected instruction data")
	ErrStakeUpdateRequestNotFound = errors.New("stake update request not found")
)

var (
	SYSTEM_PROGRAM_ID    = system.ProgramKey
	SPL_TOKEN_PROGRAM_ID = token.ProgramKey

	SYSVAR_RENT_PUBKEY = system.RentSysVar
)
