// Package memo attaches free-form notes to transactions.
package memo

import (
	"bytes"
	"crypto/ed25519"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
)

// ProgramKey is the address of the memo program (v2).
//
// Current key: MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr
var ProgramKey = ed25519.PublicKey{5, 74, 83, 90, 153, 41, 33, 6, 77, 36, 232, 113, 96, 218, 56, 124, 124, 53, 181, 221, 188, 146, 187, 129, 228, 31, 168, 64, 65, 5, 68, 141}

// MaxLength is the longest memo accepted by this package. The program itself
// is bounded by the transaction size.
const MaxLength = 566

var ErrInvalidMemo = errors.New("invalid memo")

// Instruction returns a memo instruction. Every key in signers must sign the
// transaction.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/memo/program/src/processor.rs
func Instruction(data string, signers ...ed25519.PublicKey) (solana.Instruction, error) {
	if len(data) == 0 || len(data) > MaxLength {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidMemo, "length must be within [1, %d]", MaxLength)
	}
	if !utf8.ValidString(data) {
		return solana.Instruction{}, errors.Wrap(ErrInvalidMemo, "not valid utf-8")
	}

	accounts := make([]solana.AccountMeta, len(signers))
	for i, s := range signers {
		accounts[i] = solana.ReadonlySigner(s)
	}
	return solana.NewInstruction(ProgramKey, []byte(data), accounts...), nil
}

type DecompiledMemo struct {
	Data    []byte
	Signers []ed25519.PublicKey
}

func DecompileMemo(m solana.Message, index int) (*DecompiledMemo, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	decompiled := &DecompiledMemo{Data: i.Data}
	for _, account := range i.Accounts {
		decompiled.Signers = append(decompiled.Signers, m.Accounts[account])
	}
	return decompiled, nil
}
