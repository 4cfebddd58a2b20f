package staking

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
)

// ProgramError is a custom error code returned by the staking program.
type ProgramError uint32

var programErrorMessages = []string{
	"invalid instruction",
	"numerical overflow",
	"not enough stake balance",
	"epoch expected end is in the past",
	"winning combination already published",
	"winning combination not published",
	"jackpot is not claimable yet",
	"jackpot already claimable",
	"no prize to claim",
	"yield not withdrawn",
	"return amount is 0",
	"winners already published",
	"invalid winner tier",
	"processed winners meta mismatch",
	"winner index out of bounds",
	"wrong number of winners in page",
	"unexpected winner index",
	"page index out of bounds",
	"removed instruction",
	"return amount is non zero but total invested is zero",
	"invalid prize claim",
	"prize already claimed",
	"a pending stake update request exists",
	"stake update amount mismatch",
	"program already initialized",
	"page index not in sequence",
	"insufficient balance",
}

const (
	ProgramErrorStakeUpdateRequestExists  ProgramError = 22
	ProgramErrorStakeUpdateAmountMismatch ProgramError = 23
	ProgramErrorProgramAlreadyInitialized ProgramError = 24
)

var signatureTypes = []string{"admin", "owner", "investor", "super admin"}

var epochStatuses = []string{"running", "yielding", "finalising", "ended"}

func (e ProgramError) Error() string {
	code := uint32(e)

	// Ranges are checked from the highest base down.
	switch {
	case code >= 10000:
		return fmt.Sprintf("staking: unknown error %d", code-10000)
	case code >= 1300:
		return fmt.Sprintf("staking: francium farming error %d", code-1300)
	case code >= 1200:
		return fmt.Sprintf("staking: francium lending error %d", code-1200)
	case code >= 1100:
		return fmt.Sprintf("staking: token program error %d", code-1100)
	case code >= 1000:
		return fmt.Sprintf("staking: system program error %d", code-1000)
	case code >= 450:
		return fmt.Sprintf("staking: cannot proceed with stake update state %s", StakeUpdateState(code-450))
	case code >= 400:
		return fmt.Sprintf("staking: cannot proceed with epoch status %s", lookup(epochStatuses, code-400))
	case code >= 300:
		return fmt.Sprintf("staking: invalid account provided for %s", AccountType(code-300))
	case code >= 200:
		return fmt.Sprintf("staking: invalid constant %d", code-200)
	case code >= 100:
		return fmt.Sprintf("staking: missing signature: %s", lookup(signatureTypes, code-100))
	case int(code) < len(programErrorMessages):
		return "staking: " + programErrorMessages[code]
	}
	return fmt.Sprintf("staking: error %d", code)
}

func lookup(names []string, i uint32) string {
	if int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%d", i)
}

// GetProgramError extracts the staking program error from a failed
// transaction, if the failure was a custom program error.
func GetProgramError(err error) (ProgramError, bool) {
	var custom solana.CustomError
	if !errors.As(err, &custom) {
		return 0, false
	}
	return ProgramError(custom), true
}

// GetInstructionProgramError is GetProgramError limited to failures of an
// instruction addressed to program. instructions must be the list the failed
// transaction was built from, in order. Custom errors raised by other programs
// in the same transaction, such as the associated token account program, are
// not reported.
func GetInstructionProgramError(err error, program ed25519.PublicKey, instructions []solana.Instruction) (ProgramError, bool) {
	var ixErr *solana.InstructionError
	if !errors.As(err, &ixErr) {
		return 0, false
	}
	if ixErr.Index < 0 || ixErr.Index >= len(instructions) {
		return 0, false
	}
	if !bytes.Equal(instructions[ixErr.Index].Program, program) {
		return 0, false
	}
	return GetProgramError(ixErr)
}
