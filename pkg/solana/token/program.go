package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

// ProgramKey is the address of the token program that should be used.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

type Command byte

const (
	CommandInitializeMint Command = iota
	CommandInitializeAccount
	CommandInitializeMultisig
	CommandTransfer
	CommandApprove
	CommandRevoke
	CommandSetAuthority
	CommandMintTo
)

// Transfer moves tokens between two accounts of the same mint.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L76-L91
func Transfer(source, dest, owner ed25519.PublicKey, amount uint64) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		binary.Concat(binary.Uint8(uint8(CommandTransfer)), binary.Uint64(amount)),
		solana.Writable(source),
		solana.Writable(dest),
		solana.ReadonlySigner(owner),
	)
}

// MintTo mints new tokens into dest. The authority must be the mint authority.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L165-L178
func MintTo(mint, dest, authority ed25519.PublicKey, amount uint64) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		binary.Concat(binary.Uint8(uint8(CommandMintTo)), binary.Uint64(amount)),
		solana.Writable(mint),
		solana.Writable(dest),
		solana.ReadonlySigner(authority),
	)
}

type DecompiledAmountInstruction struct {
	Command   Command
	Source    ed25519.PublicKey
	Dest      ed25519.PublicKey
	Authority ed25519.PublicKey
	Amount    uint64
}

// DecompileAmountInstruction decompiles a Transfer or MintTo instruction. For
// MintTo, Source holds the mint.
func DecompileAmountInstruction(m solana.Message, index int) (*DecompiledAmountInstruction, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) != 9 {
		return nil, errors.Errorf("invalid instruction data size: %d", len(i.Data))
	}
	if len(i.Accounts) != 3 {
		return nil, errors.Errorf("invalid number of accounts: %d (expected %d)", len(i.Accounts), 3)
	}

	command := Command(i.Data[0])
	if command != CommandTransfer && command != CommandMintTo {
		return nil, solana.ErrIncorrectInstruction
	}

	decompiled := &DecompiledAmountInstruction{
		Command:   command,
		Source:    m.Accounts[i.Accounts[0]],
		Dest:      m.Accounts[i.Accounts[1]],
		Authority: m.Accounts[i.Accounts[2]],
	}
	offset := 1
	if err := binary.GetUint64(i.Data, &decompiled.Amount, &offset); err != nil {
		return nil, err
	}
	return decompiled, nil
}
