package main

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/token"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

// usdcAccount returns the USDC associated token account of owner. When the
// account does not exist yet, an instruction creating it at the expense of
// payer is returned alongside.
func (a *app) usdcAccount(ctx context.Context, payer, owner ed25519.PublicKey) (ed25519.PublicKey, []solana.Instruction, error) {
	ata, err := token.GetAssociatedAccount(owner, a.usdcMint)
	if err != nil {
		return nil, nil, err
	}

	_, err = token.NewAccounts(a.client, a.usdcMint).Get(ctx, ata, a.commitment)
	if err == nil {
		return ata, nil, nil
	} else if !errors.Is(err, token.ErrAccountNotFound) {
		return nil, nil, errors.Wrapf(err, "failed to get usdc account %s", base58.Encode(ata))
	}

	a.log.WithField("account", base58.Encode(ata)).Info("creating usdc account")
	create, _, err := token.CreateAssociatedTokenAccountIdempotent(payer, owner, a.usdcMint)
	if err != nil {
		return nil, nil, err
	}
	return ata, []solana.Instruction{create}, nil
}

// mintUSDC mints amount base units into dest. The admin key must be the mint
// authority, which only holds on test clusters.
func (a *app) mintUSDC(ctx context.Context, dest ed25519.PublicKey, amount int64) error {
	if amount <= 0 {
		return nil
	}

	admin, err := a.keypair(roleAdmin)
	if err != nil {
		return err
	}

	a.log.WithField("amount", usdc.FromQuarks(amount)).Info("minting usdc")
	return a.send(ctx, admin, nil, token.MintTo(a.usdcMint, dest, admin.Public().(ed25519.PublicKey), uint64(amount)))
}
