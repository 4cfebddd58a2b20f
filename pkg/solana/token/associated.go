package token

import (
	"crypto/ed25519"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/system"
)

// AssociatedTokenAccountProgramKey  is the address of the associated token account program that should be used.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = ed25519.PublicKey{140, 151, 37, 143, 78, 36, 137, 241, 187, 61, 16, 41, 20, 142, 13, 131, 11, 90, 19, 153, 218, 255, 16, 132, 4, 142, 123, 216, 219, 233, 248, 89}

const commandCreateIdempotent byte = 1

// GetAssociatedAccount returns the associated account address for an SPL token.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.DeriveAddress(
		AssociatedTokenAccountProgramKey,
		solana.KeySeed(wallet),
		solana.KeySeed(ProgramKey),
		solana.KeySeed(mint),
	)
}

// CreateAssociatedTokenAccountIdempotent creates the wallet's associated
// account for mint, succeeding if it already exists.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/0639953c7dd0f5228c3ceda3ba68fece3b46ff1d/associated-token-account/program/src/instruction.rs
func CreateAssociatedTokenAccountIdempotent(subsidizer, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	addr, err := GetAssociatedAccount(wallet, mint)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	return solana.NewInstruction(
		AssociatedTokenAccountProgramKey,
		[]byte{commandCreateIdempotent},
		solana.WritableSigner(subsidizer),
		solana.Writable(addr),
		solana.Readonly(wallet),
		solana.Readonly(mint),
		solana.Readonly(system.ProgramKey),
		solana.Readonly(ProgramKey),
	), addr, nil
}
