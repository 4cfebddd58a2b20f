package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/shortvec"
)

// Marshal returns the wire encoding of the transaction: the signatures
// followed by the message.
func (t Transaction) Marshal() []byte {
	b := appendLen(nil, len(t.Signatures))
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}
	return t.Message.appendTo(b)
}

// Marshal returns the legacy wire encoding of the message. This is the
// payload that gets signed.
func (m Message) Marshal() []byte {
	return m.appendTo(nil)
}

func (m Message) appendTo(b []byte) []byte {
	b = append(b, m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly)

	b = appendLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		b = append(b, a...)
	}

	b = append(b, m.RecentBlockhash[:]...)

	b = appendLen(b, len(m.Instructions))
	for _, ix := range m.Instructions {
		b = append(b, ix.ProgramIndex)
		b = append(appendLen(b, len(ix.Accounts)), ix.Accounts...)
		b = append(appendLen(b, len(ix.Data)), ix.Data...)
	}
	return b
}

// appendLen drops the length overflow error. Oversized transactions are
// rejected by MaxTransactionSize well before a length reaches 0xffff.
func appendLen(b []byte, n int) []byte {
	b, _ = shortvec.AppendLen(b, n)
	return b
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := wireReader{bytes.NewReader(b)}

	n, err := r.length("signatures")
	if err != nil {
		return err
	}
	t.Signatures = make([]Signature, n)
	for i := range t.Signatures {
		if err := r.full(t.Signatures[i][:], "signature"); err != nil {
			return err
		}
	}

	return t.Message.Unmarshal(b[len(b)-r.Len():])
}

func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	// Versioned messages set the high bit of the first byte.
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	r := wireReader{bytes.NewReader(b)}

	var header [3]byte
	if err := r.full(header[:], "header"); err != nil {
		return err
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	n, err := r.length("accounts")
	if err != nil {
		return err
	}
	m.Accounts = make([]ed25519.PublicKey, n)
	for i := range m.Accounts {
		m.Accounts[i] = make(ed25519.PublicKey, ed25519.PublicKeySize)
		if err := r.full(m.Accounts[i], "account"); err != nil {
			return err
		}
	}

	if err := r.full(m.RecentBlockhash[:], "recent blockhash"); err != nil {
		return err
	}

	if n, err = r.length("instructions"); err != nil {
		return err
	}
	m.Instructions = make([]CompiledInstruction, n)
	for i := range m.Instructions {
		if m.Instructions[i], err = r.instruction(len(m.Accounts)); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}

	return nil
}

type wireReader struct {
	*bytes.Reader
}

func (r wireReader) length(field string) (int, error) {
	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %s length", field)
	}
	return n, nil
}

func (r wireReader) full(dst []byte, field string) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		return errors.Wrapf(err, "failed to read %s", field)
	}
	return nil
}

func (r wireReader) vec(field string) ([]byte, error) {
	n, err := r.length(field)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	return b, r.full(b, field)
}

func (r wireReader) instruction(numAccounts int) (c CompiledInstruction, err error) {
	if c.ProgramIndex, err = r.ReadByte(); err != nil {
		return c, errors.Wrap(err, "failed to read program index")
	}
	if int(c.ProgramIndex) >= numAccounts {
		return c, errors.Errorf("program index out of range: %d", c.ProgramIndex)
	}

	if c.Accounts, err = r.vec("accounts"); err != nil {
		return c, err
	}
	for _, index := range c.Accounts {
		if int(index) >= numAccounts {
			return c, errors.Errorf("account index out of range: %d", index)
		}
	}

	c.Data, err = r.vec("data")
	return c, err
}
