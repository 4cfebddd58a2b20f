package staking

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nezha-game/staking-client/pkg/solana"
)

func newKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func requireAddress(t *testing.T) func(ed25519.PublicKey, error) ed25519.PublicKey {
	return func(addr ed25519.PublicKey, err error) ed25519.PublicKey {
		require.NoError(t, err)
		return addr
	}
}

func assertAccounts(t *testing.T, expected []solana.AccountMeta, ix solana.Instruction) {
	require.Len(t, ix.Accounts, len(expected))
	for i := range expected {
		assert.EqualValues(t, expected[i].PublicKey, ix.Accounts[i].PublicKey, "account %d", i)
		assert.Equal(t, expected[i].IsSigner, ix.Accounts[i].IsSigner, "account %d signer", i)
		assert.Equal(t, expected[i].IsWritable, ix.Accounts[i].IsWritable, "account %d writable", i)
	}
}

func TestNewInitInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &InitInstructionAccounts{
		SuperAdmin: newKey(t),
		Admin:      newKey(t),
		Investor:   newKey(t),
		UsdcMint:   newKey(t),
		VrfProgram: newKey(t),
	}

	ix, err := NewInitInstruction(testProgram, accounts)
	require.NoError(t, err)

	assert.EqualValues(t, testProgram, ix.Program)
	assert.Equal(t, []byte{0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.SuperAdmin),
		solana.Readonly(accounts.Admin),
		solana.Readonly(accounts.Investor),
		solana.Readonly(accounts.UsdcMint),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Writable(must(GetDepositVaultAddress(testProgram))),
		solana.Writable(must(GetTreasuryVaultAddress(testProgram))),
		solana.Writable(must(GetInsuranceVaultAddress(testProgram))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 1))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 2))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 3))),
		solana.Writable(must(GetPendingDepositVaultAddress(testProgram))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(accounts.VrfProgram),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)

	accounts.UsdcMint = accounts.UsdcMint[:31]
	_, err = NewInitInstruction(testProgram, accounts)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewRequestStakeUpdateInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &RequestStakeUpdateInstructionAccounts{
		Owner:          newKey(t),
		OwnerUsdcToken: newKey(t),
	}

	ix, err := NewDepositInstruction(testProgram, accounts, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.Owner),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Readonly(must(GetStakeAddress(testProgram, accounts.Owner))),
		solana.Readonly(must(GetLatestEpochAddress(testProgram))),
		solana.Writable(must(GetStakeUpdateRequestAddress(testProgram, accounts.Owner))),
		solana.Writable(must(GetPendingDepositVaultAddress(testProgram))),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)

	ix, err = NewWithdrawInstruction(testProgram, accounts, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, ix.Data)

	for _, amount := range []int64{0, -1} {
		_, err = NewDepositInstruction(testProgram, accounts, amount)
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = NewWithdrawInstruction(testProgram, accounts, amount)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}

	_, err = NewRequestStakeUpdateInstruction(testProgram, accounts, &RequestStakeUpdateInstructionArgs{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestStakeUpdateAmountFromBinary(t *testing.T) {
	owner := newKey(t)

	request, err := NewWithdrawInstruction(testProgram, &RequestStakeUpdateInstructionAccounts{Owner: owner, OwnerUsdcToken: newKey(t)}, 250)
	require.NoError(t, err)
	approve, err := NewApproveStakeUpdateInstruction(testProgram, &ApproveStakeUpdateInstructionAccounts{Admin: newKey(t), Owner: owner}, &ApproveStakeUpdateInstructionArgs{Amount: 10})
	require.NoError(t, err)
	cancel, err := NewCancelStakeUpdateInstruction(testProgram, &CancelStakeUpdateInstructionAccounts{Owner: owner, OwnerUsdcToken: newKey(t)}, &CancelStakeUpdateInstructionArgs{Amount: -3})
	require.NoError(t, err)

	for _, tc := range []struct {
		data   []byte
		t      InstructionType
		amount int64
	}{
		{request.Data, InstructionTypeRequestStakeUpdate, -250},
		{approve.Data, InstructionTypeApproveStakeUpdate, 10},
		{cancel.Data, InstructionTypeCancelStakeUpdate, -3},
	} {
		actualType, amount, err := StakeUpdateAmountFromBinary(tc.data)
		require.NoError(t, err)
		assert.Equal(t, tc.t, actualType)
		assert.Equal(t, tc.amount, amount)
	}

	_, _, err = StakeUpdateAmountFromBinary(request.Data[:8])
	assert.True(t, errors.Is(err, ErrInvalidInstructionData))

	_, _, err = StakeUpdateAmountFromBinary([]byte{9, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.True(t, errors.Is(err, ErrInvalidInstructionData))
}

func TestNewApproveStakeUpdateInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &ApproveStakeUpdateInstructionAccounts{
		Admin: newKey(t),
		Owner: newKey(t),
	}

	ix, err := NewApproveStakeUpdateInstruction(testProgram, accounts, &ApproveStakeUpdateInstructionArgs{Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 5, 0, 0, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.ReadonlySigner(accounts.Admin),
		solana.Readonly(accounts.Owner),
		solana.Writable(must(GetStakeUpdateRequestAddress(testProgram, accounts.Owner))),
		solana.Readonly(must(GetLatestEpochAddress(testProgram))),
	}, ix)

	_, err = NewApproveStakeUpdateInstruction(testProgram, accounts, &ApproveStakeUpdateInstructionArgs{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewCancelStakeUpdateInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &CancelStakeUpdateInstructionAccounts{
		Owner:          newKey(t),
		OwnerUsdcToken: newKey(t),
	}
	expected := []solana.AccountMeta{
		solana.WritableSigner(accounts.Owner),
		solana.Readonly(accounts.Owner),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Writable(must(GetStakeUpdateRequestAddress(testProgram, accounts.Owner))),
		solana.Writable(must(GetPendingDepositVaultAddress(testProgram))),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Readonly(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}

	ix, err := NewCancelStakeUpdateInstruction(testProgram, accounts, &CancelStakeUpdateInstructionArgs{Amount: 7})
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 7, 0, 0, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, expected, ix)

	accounts.Admin = newKey(t)
	expected[0] = solana.WritableSigner(accounts.Admin)

	ix, err = NewCancelStakeUpdateInstruction(testProgram, accounts, &CancelStakeUpdateInstructionArgs{Amount: 7})
	require.NoError(t, err)
	assertAccounts(t, expected, ix)

	accounts.Admin = accounts.Admin[:8]
	_, err = NewCancelStakeUpdateInstruction(testProgram, accounts, &CancelStakeUpdateInstructionArgs{Amount: 7})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewCompleteStakeUpdateInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &CompleteStakeUpdateInstructionAccounts{
		Payer:          newKey(t),
		Owner:          newKey(t),
		OwnerUsdcToken: newKey(t),
	}

	ix, err := NewCompleteStakeUpdateInstruction(testProgram, accounts)
	require.NoError(t, err)
	assert.Equal(t, []byte{18}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.Payer),
		solana.Readonly(accounts.Owner),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Writable(must(GetStakeUpdateRequestAddress(testProgram, accounts.Owner))),
		solana.Writable(must(GetStakeAddress(testProgram, accounts.Owner))),
		solana.Readonly(must(GetLatestEpochAddress(testProgram))),
		solana.Writable(must(GetPendingDepositVaultAddress(testProgram))),
		solana.Writable(must(GetDepositVaultAddress(testProgram))),
		solana.Writable(accounts.OwnerUsdcToken),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)
}

type borshYieldSplitCfg struct {
	Jackpot              [3]uint64
	InsurancePremium     [3]uint64
	InsuranceProbability [3]uint64
	TreasuryRatio        [3]uint64
	Tier2PrizeShare      uint8
	Tier3PrizeShare      uint8
}

type borshCreateEpoch struct {
	Instruction   uint8
	ExpectedEndAt int64
	YieldSplitCfg borshYieldSplitCfg
}

func TestNewCreateEpochInstruction(t *testing.T) {
	must := requireAddress(t)
	admin := newKey(t)
	args := &CreateEpochInstructionArgs{
		Epoch:         4,
		ExpectedEndAt: 1_700_000_000,
		YieldSplitCfg: YieldSplitCfg{
			Jackpot: NewFixedPoint(100_000 * 1_000_000),
			Insurance: InsuranceCfg{
				Premium:     NewFixedPoint(3_000_000),
				Probability: FixedPoint{0x6f05b59d3b200000, 0x1, 0},
			},
			TreasuryRatio:   NewFixedPoint(500),
			Tier2PrizeShare: 7,
			Tier3PrizeShare: 3,
		},
	}

	ix, err := NewCreateEpochInstruction(testProgram, &CreateEpochInstructionAccounts{Admin: admin}, args)
	require.NoError(t, err)

	expected, err := borsh.Serialize(borshCreateEpoch{
		Instruction:   uint8(InstructionTypeCreateEpoch),
		ExpectedEndAt: args.ExpectedEndAt,
		YieldSplitCfg: borshYieldSplitCfg{
			Jackpot:              args.YieldSplitCfg.Jackpot,
			InsurancePremium:     args.YieldSplitCfg.Insurance.Premium,
			InsuranceProbability: args.YieldSplitCfg.Insurance.Probability,
			TreasuryRatio:        args.YieldSplitCfg.TreasuryRatio,
			Tier2PrizeShare:      7,
			Tier3PrizeShare:      3,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, expected, ix.Data)
	assert.Len(t, ix.Data, 1+8+4*24+2)

	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(admin),
		solana.Writable(must(GetEpochAddress(testProgram, 4))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)
}

func TestNewClaimWinningInstruction(t *testing.T) {
	must := requireAddress(t)
	owner := newKey(t)
	args := &ClaimWinningInstructionArgs{
		Epoch:       5,
		Page:        2,
		WinnerIndex: 9,
		Tier:        1,
	}

	ix, err := NewClaimWinningInstruction(testProgram, &ClaimWinningInstructionAccounts{Owner: owner}, args)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 5, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 9, 0, 0, 0, 1}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.Readonly(owner),
		solana.Writable(must(GetEpochWinnersMetaAddress(testProgram, 5))),
		solana.Writable(must(GetEpochWinnersPageAddress(testProgram, 5, 2))),
		solana.Writable(must(GetStakeAddress(testProgram, owner))),
		solana.Readonly(must(GetEpochAddress(testProgram, 5))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 1))),
		solana.Writable(must(GetDepositVaultAddress(testProgram))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}, ix)

	decoded, err := ClaimWinningInstructionArgsFromBinary(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, args, decoded)

	_, err = ClaimWinningInstructionArgsFromBinary(ix.Data[:17])
	assert.True(t, errors.Is(err, ErrInvalidInstructionData))

	wrongType := append([]byte{12}, ix.Data[1:]...)
	_, err = ClaimWinningInstructionArgsFromBinary(wrongType)
	assert.True(t, errors.Is(err, ErrInvalidInstructionData))

	for _, tier := range []uint8{0, 4} {
		args.Tier = tier
		_, err = NewClaimWinningInstruction(testProgram, &ClaimWinningInstructionAccounts{Owner: owner}, args)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
}

type borshTicketsInfo struct {
	Instruction uint8
	NumTickets  uint64
	URL         string
	Hash        []byte
	Version     uint8
}

func TestNewYieldWithdrawByInvestorInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &YieldWithdrawByInvestorInstructionAccounts{
		Admin:             newKey(t),
		InvestorUsdcToken: newKey(t),
	}
	args := &YieldWithdrawByInvestorInstructionArgs{
		Epoch: 11,
		TicketsInfo: TicketsInfo{
			NumTickets: 42,
			URL:        "https://example.com/t.json",
			Hash:       []byte{0xde, 0xad, 0xbe, 0xef},
			Version:    1,
		},
	}

	ix, err := NewYieldWithdrawByInvestorInstruction(testProgram, accounts, args)
	require.NoError(t, err)

	expected, err := borsh.Serialize(borshTicketsInfo{
		Instruction: uint8(InstructionTypeYieldWithdrawByInvestor),
		NumTickets:  42,
		URL:         args.TicketsInfo.URL,
		Hash:        args.TicketsInfo.Hash,
		Version:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, expected, ix.Data)

	assertAccounts(t, []solana.AccountMeta{
		solana.ReadonlySigner(accounts.Admin),
		solana.Writable(accounts.InvestorUsdcToken),
		solana.Writable(must(GetEpochAddress(testProgram, 11))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Writable(must(GetDepositVaultAddress(testProgram))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}, ix)

	args.TicketsInfo.URL = strings.Repeat("a", TicketsURLMaxLength)
	args.TicketsInfo.Hash = make([]byte, TicketsHashMaxLength)
	_, err = NewYieldWithdrawByInvestorInstruction(testProgram, accounts, args)
	require.NoError(t, err)

	args.TicketsInfo.URL = strings.Repeat("a", TicketsURLMaxLength+1)
	_, err = NewYieldWithdrawByInvestorInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	args.TicketsInfo.URL = ""
	args.TicketsInfo.Hash = make([]byte, TicketsHashMaxLength+1)
	_, err = NewYieldWithdrawByInvestorInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewYieldDepositByInvestorInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &YieldDepositByInvestorInstructionAccounts{
		Investor:          newKey(t),
		InvestorUsdcToken: newKey(t),
	}

	ix, err := NewYieldDepositByInvestorInstruction(testProgram, accounts, &YieldDepositByInvestorInstructionArgs{Epoch: 3, ReturnAmount: 256})
	require.NoError(t, err)
	assert.Equal(t, []byte{11, 0, 1, 0, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.ReadonlySigner(accounts.Investor),
		solana.Writable(accounts.InvestorUsdcToken),
		solana.Writable(must(GetEpochAddress(testProgram, 3))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Writable(must(GetDepositVaultAddress(testProgram))),
		solana.Writable(must(GetTreasuryVaultAddress(testProgram))),
		solana.Writable(must(GetInsuranceVaultAddress(testProgram))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 2))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 3))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}, ix)

	ix, err = NewYieldDepositByInvestorInstruction(testProgram, accounts, &YieldDepositByInvestorInstructionArgs{Epoch: 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{11, 0, 0, 0, 0, 0, 0, 0, 0}, ix.Data)

	_, err = NewYieldDepositByInvestorInstruction(testProgram, accounts, &YieldDepositByInvestorInstructionArgs{Epoch: 3, ReturnAmount: -1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewFundJackpotInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &FundJackpotInstructionAccounts{
		Funder:          newKey(t),
		FunderUsdcToken: newKey(t),
	}

	ix, err := NewFundJackpotInstruction(testProgram, accounts, &FundJackpotInstructionArgs{Epoch: 258})
	require.NoError(t, err)
	assert.Equal(t, []byte{12, 2, 1, 0, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.ReadonlySigner(accounts.Funder),
		solana.Writable(accounts.FunderUsdcToken),
		solana.Writable(must(GetEpochAddress(testProgram, 258))),
		solana.Writable(must(GetEpochWinnersMetaAddress(testProgram, 258))),
		solana.Writable(must(GetPrizeVaultAddress(testProgram, 1))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}, ix)
}

func TestNewWithdrawVaultInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &WithdrawVaultInstructionAccounts{
		Admin:       newKey(t),
		Destination: newKey(t),
	}

	ix, err := NewWithdrawVaultInstruction(testProgram, accounts, &WithdrawVaultInstructionArgs{Vault: WithdrawVaultTreasury, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, []byte{17, 1, 10, 0, 0, 0, 0, 0, 0, 0}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.Admin),
		solana.Readonly(must(GetVaultAuthorityAddress(testProgram))),
		solana.Writable(must(GetTreasuryVaultAddress(testProgram))),
		solana.Writable(accounts.Destination),
		solana.Readonly(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(SPL_TOKEN_PROGRAM_ID),
	}, ix)

	ix, err = NewWithdrawVaultInstruction(testProgram, accounts, &WithdrawVaultInstructionArgs{Vault: WithdrawVaultInsurance, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, byte(0), ix.Data[1])
	assert.EqualValues(t, must(GetInsuranceVaultAddress(testProgram)), ix.Accounts[2].PublicKey)

	_, err = NewWithdrawVaultInstruction(testProgram, accounts, &WithdrawVaultInstructionArgs{Vault: 2, Amount: 10})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewWithdrawVaultInstruction(testProgram, accounts, &WithdrawVaultInstructionArgs{Vault: WithdrawVaultTreasury, Amount: -10})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewCreateEpochWinnersMetaInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &CreateEpochWinnersMetaInstructionAccounts{
		Admin:      newKey(t),
		VrfProgram: newKey(t),
	}
	args := &CreateEpochWinnersMetaInstructionArgs{
		Epoch: 8,
		Meta: CreateEpochWinnersMetaArgs{
			Tier1: TierWinnersMetaInput{TotalNumWinners: 1, TotalNumWinningTickets: 1},
			Tier2: TierWinnersMetaInput{TotalNumWinners: 10, TotalNumWinningTickets: 12},
			Tier3: TierWinnersMetaInput{TotalNumWinners: 100, TotalNumWinningTickets: 300},
		},
	}

	ix, err := NewCreateEpochWinnersMetaInstruction(testProgram, accounts, args)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		19,
		1, 0, 0, 0, 1, 0, 0, 0,
		10, 0, 0, 0, 12, 0, 0, 0,
		100, 0, 0, 0, 44, 1, 0, 0,
	}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.Admin),
		solana.Writable(must(GetEpochWinnersMetaAddress(testProgram, 8))),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Writable(must(GetEpochAddress(testProgram, 8))),
		solana.Readonly(must(GetVrfRequestAddress(accounts.VrfProgram, 8))),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)
}

type borshWinnerInput struct {
	Index             uint32
	Address           [32]byte
	Tier              uint8
	NumWinningTickets uint32
}

type borshPublishWinners struct {
	Instruction uint8
	Page        uint32
	Winners     []borshWinnerInput
}

func TestNewPublishWinnersInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &PublishWinnersInstructionAccounts{
		Admin:      newKey(t),
		VrfProgram: newKey(t),
	}
	args := &PublishWinnersInstructionArgs{
		Epoch: 6,
		Page:  1,
		Winners: []WinnerInput{
			{Index: 0, Address: newKey(t), Tier: 1, NumWinningTickets: 1},
			{Index: 1, Address: newKey(t), Tier: 3, NumWinningTickets: 4},
		},
	}

	ix, err := NewPublishWinnersInstruction(testProgram, accounts, args)
	require.NoError(t, err)

	mirror := borshPublishWinners{Instruction: uint8(InstructionTypePublishWinners), Page: 1}
	for _, w := range args.Winners {
		entry := borshWinnerInput{Index: w.Index, Tier: w.Tier, NumWinningTickets: w.NumWinningTickets}
		copy(entry.Address[:], w.Address)
		mirror.Winners = append(mirror.Winners, entry)
	}
	expected, err := borsh.Serialize(mirror)
	require.NoError(t, err)
	assert.Equal(t, expected, ix.Data)
	assert.Len(t, ix.Data, 1+4+4+2*(4+32+1+4))

	assertAccounts(t, []solana.AccountMeta{
		solana.WritableSigner(accounts.Admin),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Writable(must(GetEpochAddress(testProgram, 6))),
		solana.Writable(must(GetEpochWinnersMetaAddress(testProgram, 6))),
		solana.Writable(must(GetEpochWinnersPageAddress(testProgram, 6, 1))),
		solana.Readonly(must(GetVrfRequestAddress(accounts.VrfProgram, 6))),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	}, ix)

	args.Winners[1].Tier = 4
	_, err = NewPublishWinnersInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	args.Winners[1].Tier = 2
	args.Winners[1].Address = args.Winners[1].Address[:4]
	_, err = NewPublishWinnersInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	args.Winners = nil
	_, err = NewPublishWinnersInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	for i := 0; i <= MaxWinnersPerPage; i++ {
		args.Winners = append(args.Winners, WinnerInput{Index: uint32(i), Address: newKey(t), Tier: 1, NumWinningTickets: 1})
	}
	_, err = NewPublishWinnersInstruction(testProgram, accounts, args)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	args.Winners = args.Winners[:MaxWinnersPerPage]
	_, err = NewPublishWinnersInstruction(testProgram, accounts, args)
	assert.NoError(t, err)
}

func TestNewRotateKeyInstruction(t *testing.T) {
	must := requireAddress(t)
	accounts := &RotateKeyInstructionAccounts{
		SuperAdmin: newKey(t),
		NewKey:     newKey(t),
	}

	ix, err := NewRotateKeyInstruction(testProgram, accounts, &RotateKeyInstructionArgs{KeyType: RotateKeyTypeInvestor})
	require.NoError(t, err)
	assert.Equal(t, []byte{21, 2}, ix.Data)
	assertAccounts(t, []solana.AccountMeta{
		solana.ReadonlySigner(accounts.SuperAdmin),
		solana.Writable(must(GetLatestEpochAddress(testProgram))),
		solana.Readonly(accounts.NewKey),
	}, ix)

	_, err = NewRotateKeyInstruction(testProgram, accounts, &RotateKeyInstructionArgs{KeyType: 3})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestBuilders_InvalidProgram(t *testing.T) {
	program := testProgram[:31]

	_, err := NewInitInstruction(program, &InitInstructionAccounts{
		SuperAdmin: newKey(t),
		Admin:      newKey(t),
		Investor:   newKey(t),
		UsdcMint:   newKey(t),
		VrfProgram: newKey(t),
	})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewFundJackpotInstruction(program, &FundJackpotInstructionAccounts{Funder: newKey(t), FunderUsdcToken: newKey(t)}, &FundJackpotInstructionArgs{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestBuilders_Deterministic(t *testing.T) {
	owner := newKey(t)
	args := &ClaimWinningInstructionArgs{Epoch: 1, Page: 0, WinnerIndex: 0, Tier: 3}

	first, err := NewClaimWinningInstruction(testProgram, &ClaimWinningInstructionAccounts{Owner: owner}, args)
	require.NoError(t, err)
	second, err := NewClaimWinningInstruction(testProgram, &ClaimWinningInstructionAccounts{Owner: owner}, args)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The returned instruction does not alias caller input.
	owner[0] ^= 0xff
	assert.NotEqual(t, owner[0], first.Accounts[0].PublicKey[0])
}
