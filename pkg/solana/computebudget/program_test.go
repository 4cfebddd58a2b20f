package computebudget

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/system"
)

func TestProgramKey(t *testing.T) {
	assert.Equal(t, "ComputeBudget111111111111111111111111111111", base58.Encode(ProgramKey))
}

func TestSetComputeUnitLimit(t *testing.T) {
	ixn := SetComputeUnitLimit(MaxComputeUnitLimit)
	assert.Equal(t, []byte{2, 0xc0, 0x5c, 0x15, 0}, ixn.Data)
	assert.Empty(t, ixn.Accounts)

	limit, err := ParseSetComputeUnitLimitIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, MaxComputeUnitLimit, limit)

	_, err = ParseSetComputeUnitLimitIxnData(ixn.Data[:4])
	assert.Error(t, err)
	_, err = ParseSetComputeUnitPriceIxnData(ixn.Data)
	assert.Error(t, err)
}

func TestSetComputeUnitPrice(t *testing.T) {
	ixn := SetComputeUnitPrice(1000)
	assert.Equal(t, []byte{3, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}, ixn.Data)

	price, err := ParseSetComputeUnitPriceIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, price)
}

func TestGetComputeUnitLimit(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	dest, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := solana.NewTransaction(payer, system.Transfer(payer, dest, 1))
	_, ok, err := GetComputeUnitLimit(tx.Message)
	require.NoError(t, err)
	assert.False(t, ok)

	tx = solana.NewTransaction(payer, SetComputeUnitPrice(5), SetComputeUnitLimit(300_000), system.Transfer(payer, dest, 1))
	limit, ok, err := GetComputeUnitLimit(tx.Message)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 300_000, limit)
}
