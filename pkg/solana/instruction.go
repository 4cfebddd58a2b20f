package solana

import (
	"bytes"
	"crypto/ed25519"
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta describes how an instruction touches an account.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta returns a writable account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta returns a readonly account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{PublicKey: pub, IsSigner: isSigner}
}

func WritableSigner(pub ed25519.PublicKey) AccountMeta {
	return NewAccountMeta(pub, true)
}

func Writable(pub ed25519.PublicKey) AccountMeta {
	return NewAccountMeta(pub, false)
}

func ReadonlySigner(pub ed25519.PublicKey) AccountMeta {
	return NewReadonlyAccountMeta(pub, true)
}

func Readonly(pub ed25519.PublicKey) AccountMeta {
	return NewReadonlyAccountMeta(pub, false)
}

// class ranks an account by its slot group in a compiled message. Within a
// group accounts are ordered by key.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
func (a AccountMeta) class() int {
	switch {
	case a.isPayer:
		return 0
	case a.isProgram:
		return 5
	case a.IsSigner && a.IsWritable:
		return 1
	case a.IsSigner:
		return 2
	case a.IsWritable:
		return 3
	default:
		return 4
	}
}

func sortAccounts(accounts []AccountMeta) {
	sort.Slice(accounts, func(i, j int) bool {
		if ci, cj := accounts[i].class(), accounts[j].class(); ci != cj {
			return ci < cj
		}
		return bytes.Compare(accounts[i].PublicKey, accounts[j].PublicKey) < 0
	})
}

// Instruction represents a transaction instruction. Account order is
// significant and is preserved exactly as provided.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction. The program, data and account
// list are copied so later mutation by the caller has no effect. A nil data
// slice stays nil.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	copied := make([]AccountMeta, len(accounts))
	for i, a := range accounts {
		a.PublicKey = append(ed25519.PublicKey(nil), a.PublicKey...)
		copied[i] = a
	}

	var copiedData []byte
	if data != nil {
		copiedData = append([]byte{}, data...)
	}

	return Instruction{
		Program:  append(ed25519.PublicKey(nil), program...),
		Data:     copiedData,
		Accounts: copied,
	}
}

// CompiledInstruction is an instruction whose program and accounts are
// indexes into the message account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
