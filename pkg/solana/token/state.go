package token

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	/// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

// Unmarshal decodes a packed token account. COption fields carry a 4 byte tag.
func (a *Account) Unmarshal(b []byte) error {
	if len(b) != AccountSize {
		return errors.Errorf("invalid account size: %d", len(b))
	}

	var offset int
	var tag uint32
	var state uint8
	var native uint64
	var delegate, closeAuthority ed25519.PublicKey

	for _, err := range []error{
		binary.GetKey32(b, &a.Mint, &offset),
		binary.GetKey32(b, &a.Owner, &offset),
		binary.GetUint64(b, &a.Amount, &offset),
		binary.GetUint32(b, &tag, &offset),
		binary.GetKey32(b, &delegate, &offset),
	} {
		if err != nil {
			return err
		}
	}
	a.Delegate = nil
	if tag != 0 {
		a.Delegate = delegate
	}

	for _, err := range []error{
		binary.GetUint8(b, &state, &offset),
		binary.GetUint32(b, &tag, &offset),
		binary.GetUint64(b, &native, &offset),
	} {
		if err != nil {
			return err
		}
	}
	a.State = AccountState(state)
	a.IsNative = nil
	if tag != 0 {
		a.IsNative = &native
	}

	for _, err := range []error{
		binary.GetUint64(b, &a.DelegatedAmount, &offset),
		binary.GetUint32(b, &tag, &offset),
		binary.GetKey32(b, &closeAuthority, &offset),
	} {
		if err != nil {
			return err
		}
	}
	a.CloseAuthority = nil
	if tag != 0 {
		a.CloseAuthority = closeAuthority
	}

	return nil
}
