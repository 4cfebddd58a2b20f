package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

var ErrTransactionTooLarge = errors.New("transaction exceeds maximum size")

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy transaction paid for
// by payer. The blockhash must be set before signing.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}

	for _, i := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: i.Program,
			isProgram: true,
		})
		accounts = append(accounts, i.Accounts...)
	}

	accounts = mergeAccounts(accounts)
	sortAccounts(accounts)

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		switch {
		case account.IsSigner:
			m.Header.NumSignatures++
			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		case !account.IsWritable:
			m.Header.NumReadOnly++
		}
	}

	for _, i := range instructions {
		c := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, i.Program)),
			Data:         i.Data,
		}
		for _, a := range i.Accounts {
			c.Accounts = append(c.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}
		m.Instructions = append(m.Instructions, c)
	}

	// Unset keys still occupy a slot on the wire.
	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Signature returns the fee payer's signature, which identifies the transaction.
func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with every provided key. Each key must belong to a
// signer slot in the account list.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		fmt.Fprintf(&sb, "  %d: %s\n", i, base58.Encode(s[:]))
	}
	sb.WriteString("Message:\n")
	fmt.Fprintf(&sb, "  Header: %d signers, %d readonly signers, %d readonly\n",
		t.Message.Header.NumSignatures,
		t.Message.Header.NumReadonlySigned,
		t.Message.Header.NumReadOnly,
	)
	fmt.Fprintf(&sb, "  Blockhash: %s\n", base58.Encode(t.Message.RecentBlockhash[:]))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		fmt.Fprintf(&sb, "    %d: %s\n", i, base58.Encode(a))
	}
	sb.WriteString("  Instructions:\n")
	for i, c := range t.Message.Instructions {
		fmt.Fprintf(&sb, "    %d: program=%d accounts=%v data=%v\n", i, c.ProgramIndex, c.Accounts, c.Data)
	}
	return sb.String()
}

// mergeAccounts collapses repeated keys into their first occurrence, which
// keeps the most permissive flags seen for the key.
func mergeAccounts(accounts []AccountMeta) []AccountMeta {
	merged := make([]AccountMeta, 0, len(accounts))
	seen := make(map[string]int, len(accounts))

	for _, a := range accounts {
		i, ok := seen[string(a.PublicKey)]
		if !ok {
			seen[string(a.PublicKey)] = len(merged)
			merged = append(merged, a)
			continue
		}

		merged[i].IsSigner = merged[i].IsSigner || a.IsSigner
		merged[i].IsWritable = merged[i].IsWritable || a.IsWritable
		merged[i].isPayer = merged[i].isPayer || a.isPayer
	}

	return merged
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
