package system

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

// ProgramKey is the address of the system program.
//
// Current key: 11111111111111111111111111111111
var ProgramKey = make(ed25519.PublicKey, ed25519.PublicKeySize)

type Command uint32

const (
	CommandCreateAccount Command = iota
	CommandAssign
	CommandTransfer
)

// Transfer moves lamports between two system accounts.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L229
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		binary.Concat(binary.Uint32(uint32(CommandTransfer)), binary.Uint64(lamports)),
		solana.WritableSigner(from),
		solana.Writable(to),
	)
}

type DecompiledTransfer struct {
	From     ed25519.PublicKey
	To       ed25519.PublicKey
	Lamports uint64
}

func DecompileTransfer(m solana.Message, index int) (*DecompiledTransfer, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d (expected %d)", len(i.Accounts), 2)
	}

	var command uint32
	var offset int
	if err := binary.GetUint32(i.Data, &command, &offset); err != nil {
		return nil, err
	}
	if Command(command) != CommandTransfer {
		return nil, solana.ErrIncorrectInstruction
	}

	decompiled := &DecompiledTransfer{
		From: m.Accounts[i.Accounts[0]],
		To:   m.Accounts[i.Accounts[1]],
	}
	if err := binary.GetUint64(i.Data, &decompiled.Lamports, &offset); err != nil {
		return nil, err
	}
	return decompiled, nil
}
