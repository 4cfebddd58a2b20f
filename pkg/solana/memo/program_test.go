package memo

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nezha-game/staking-client/pkg/solana"
)

func TestInstruction(t *testing.T) {
	i, err := Instruction("hello, world!")
	require.NoError(t, err)
	assert.Equal(t, ProgramKey, i.Program)
	assert.Empty(t, i.Accounts)
	assert.Equal(t, "hello, world!", string(i.Data))

	signer := newKey(t)
	i, err = Instruction("signed", signer)
	require.NoError(t, err)
	assert.Equal(t, []solana.AccountMeta{solana.ReadonlySigner(signer)}, i.Accounts)

	for _, data := range []string{"", strings.Repeat("a", MaxLength+1), "\xff"} {
		_, err := Instruction(data)
		assert.True(t, errors.Is(err, ErrInvalidMemo))
	}
}

func TestDecompile(t *testing.T) {
	payer := newKey(t)
	ix, err := Instruction("hello, world", payer)
	require.NoError(t, err)
	tx := solana.NewTransaction(payer, ix)

	decompiled, err := DecompileMemo(tx.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(decompiled.Data))
	assert.Equal(t, []ed25519.PublicKey{payer}, decompiled.Signers)

	_, err = DecompileMemo(tx.Message, 1)
	assert.Error(t, err)

	tx.Message.Accounts[tx.Message.Instructions[0].ProgramIndex] = newKey(t)
	_, err = DecompileMemo(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}

func newKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
