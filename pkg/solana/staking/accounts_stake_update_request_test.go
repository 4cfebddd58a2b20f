package staking

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nezha-game/staking-client/pkg/solana"
)

func encodeStakeUpdateRequest(t *testing.T, owner ed25519.PublicKey, amount int64, state StakeUpdateState) []byte {
	layout := stakeUpdateRequestLayout{
		AccountType:     uint8(AccountTypeStakeUpdateRequest),
		ContractVersion: 0,
		IsInitialized:   true,
		Amount:          amount,
		State:           uint8(state),
	}
	copy(layout.Owner[:], owner)

	data, err := borsh.Serialize(layout)
	require.NoError(t, err)
	require.Len(t, data, StakeUpdateRequestAccountSize)
	return data
}

func TestStakeUpdateRequest_Unmarshal(t *testing.T) {
	owner := newKey(t)
	data := encodeStakeUpdateRequest(t, owner, -500, StakeUpdateStateQueued)

	var req StakeUpdateRequest
	require.NoError(t, req.Unmarshal(data))
	assert.True(t, req.IsInitialized)
	assert.EqualValues(t, owner, req.Owner)
	assert.EqualValues(t, -500, req.Amount)
	assert.Equal(t, StakeUpdateStateQueued, req.State)
	assert.False(t, req.IsDeposit())

	// Trailing bytes from account padding are ignored.
	require.NoError(t, req.Unmarshal(append(data, 0, 0, 0)))

	assert.True(t, errors.Is(req.Unmarshal(data[:StakeUpdateRequestAccountSize-1]), ErrInvalidAccountData))

	wrongType := append([]byte{}, data...)
	wrongType[0] = uint8(AccountTypeStake)
	assert.True(t, errors.Is(req.Unmarshal(wrongType), ErrInvalidAccountData))
}

type fakeClient struct {
	solana.Client

	accounts map[string]solana.AccountInfo
}

func (c *fakeClient) GetAccountInfo(_ context.Context, key ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	info, ok := c.accounts[string(key)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func TestGetStakeUpdateRequest(t *testing.T) {
	ctx := context.Background()
	owner := newKey(t)
	other := newKey(t)

	address, err := GetStakeUpdateRequestAddress(testProgram, owner)
	require.NoError(t, err)
	otherAddress, err := GetStakeUpdateRequestAddress(testProgram, other)
	require.NoError(t, err)

	client := &fakeClient{
		accounts: map[string]solana.AccountInfo{
			string(address): {
				Owner: testProgram,
				Data:  encodeStakeUpdateRequest(t, owner, 1_000, StakeUpdateStatePendingApproval),
			},
			string(otherAddress): {
				Owner: newKey(t),
				Data:  encodeStakeUpdateRequest(t, other, 1_000, StakeUpdateStatePendingApproval),
			},
		},
	}

	req, err := GetStakeUpdateRequest(ctx, client, testProgram, owner, solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, owner, req.Owner)
	assert.EqualValues(t, 1_000, req.Amount)
	assert.True(t, req.IsDeposit())
	assert.Equal(t, "PendingApproval", req.State.String())

	_, err = GetStakeUpdateRequest(ctx, client, testProgram, other, solana.CommitmentConfirmed)
	assert.True(t, errors.Is(err, ErrInvalidAccountData))

	_, err = GetStakeUpdateRequest(ctx, client, testProgram, newKey(t), solana.CommitmentConfirmed)
	assert.Equal(t, ErrStakeUpdateRequestNotFound, err)
}
