package token

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
)

var (
	// ErrAccountNotFound is returned when nothing exists at the address.
	ErrAccountNotFound = errors.New("token account not found")
	// ErrInvalidTokenAccount is returned when the address holds something
	// other than an initialized token account of the expected mint.
	ErrInvalidTokenAccount = errors.New("invalid token account")
)

// Accounts reads token accounts of a single mint.
type Accounts struct {
	client solana.Client
	mint   ed25519.PublicKey
}

func NewAccounts(client solana.Client, mint ed25519.PublicKey) *Accounts {
	return &Accounts{
		client: client,
		mint:   mint,
	}
}

// Get loads and validates the token account at address.
func (a *Accounts) Get(ctx context.Context, address ed25519.PublicKey, commitment solana.Commitment) (*Account, error) {
	info, err := a.client.GetAccountInfo(ctx, address, commitment)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, errors.Wrap(ErrAccountNotFound, base58.Encode(address))
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to load token account %s", base58.Encode(address))
	}

	if !bytes.Equal(info.Owner, ProgramKey) {
		return nil, errors.Wrapf(ErrInvalidTokenAccount, "owned by %s", base58.Encode(info.Owner))
	}

	var account Account
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(ErrInvalidTokenAccount, err.Error())
	}
	switch {
	case !bytes.Equal(account.Mint, a.mint):
		return nil, errors.Wrapf(ErrInvalidTokenAccount, "mint is %s", base58.Encode(account.Mint))
	case account.State == AccountStateUninitialized:
		return nil, errors.Wrap(ErrInvalidTokenAccount, "uninitialized")
	}

	return &account, nil
}

// Balance returns the amount held by the token account at address.
func (a *Accounts) Balance(ctx context.Context, address ed25519.PublicKey, commitment solana.Commitment) (uint64, error) {
	account, err := a.Get(ctx, address, commitment)
	if err != nil {
		return 0, err
	}
	return account.Amount, nil
}
