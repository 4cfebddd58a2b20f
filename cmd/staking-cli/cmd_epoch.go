package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/solana/staking"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

// Defaults used by create-epoch.
const (
	defaultEpochDuration   = 7 * 24 * time.Hour
	defaultJackpot         = "100_000"
	defaultPremium         = "3.0"
	defaultProbability     = "0.000_000_000_181_576_594"
	defaultTreasuryRatio   = "0.5"
	defaultTier2PrizeShare = 1
	defaultTier3PrizeShare = 1
)

func init() {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the staking program with the configured keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			superAdmin, err := cli.keypair(roleSuperAdmin)
			if err != nil {
				return err
			}
			admin, err := cli.publicKey(roleAdmin)
			if err != nil {
				return err
			}
			investor, err := cli.publicKey(roleInvestor)
			if err != nil {
				return err
			}

			vrfProgram, err := cli.vrfProgram(cmd.Context())
			if err != nil {
				return err
			}

			ix, err := staking.NewInitInstruction(cli.program, &staking.InitInstructionAccounts{
				SuperAdmin: superAdmin.Public().(ed25519.PublicKey),
				Admin:      admin,
				Investor:   investor,
				UsdcMint:   cli.usdcMint,
				VrfProgram: vrfProgram,
			})
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return cli.send(ctx, superAdmin, nil, ix)
		},
	}
	rootCmd.AddCommand(initCmd)

	var (
		flagDuration        time.Duration
		flagJackpot         string
		flagPremium         string
		flagProbability     string
		flagTreasuryRatio   string
		flagTier2PrizeShare uint8
		flagTier3PrizeShare uint8
	)

	createEpochCmd := &cobra.Command{
		Use:   "create-epoch <epoch>",
		Short: "Create the next epoch as the admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}

			cfg := staking.YieldSplitCfg{
				Tier2PrizeShare: flagTier2PrizeShare,
				Tier3PrizeShare: flagTier3PrizeShare,
			}
			for _, f := range []struct {
				name     string
				value    string
				decimals int
				dst      *staking.FixedPoint
			}{
				{"jackpot", flagJackpot, staking.USDCDecimals, &cfg.Jackpot},
				{"premium", flagPremium, staking.USDCDecimals, &cfg.Insurance.Premium},
				{"probability", flagProbability, staking.InternalDecimals, &cfg.Insurance.Probability},
				{"treasury-ratio", flagTreasuryRatio, staking.TreasuryRatioDecimals, &cfg.TreasuryRatio},
			} {
				if *f.dst, err = staking.ParseFixedPoint(f.value, f.decimals); err != nil {
					return errors.Wrapf(err, "invalid --%s", f.name)
				}
			}

			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			ix, err := staking.NewCreateEpochInstruction(
				cli.program,
				&staking.CreateEpochInstructionAccounts{Admin: admin.Public().(ed25519.PublicKey)},
				&staking.CreateEpochInstructionArgs{
					Epoch:         epoch,
					ExpectedEndAt: time.Now().Add(flagDuration).Unix(),
					YieldSplitCfg: cfg,
				},
			)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return cli.send(ctx, admin, nil, ix)
		},
	}
	createEpochCmd.Flags().DurationVar(&flagDuration, "duration", defaultEpochDuration, "Time until the epoch is expected to end")
	createEpochCmd.Flags().StringVar(&flagJackpot, "jackpot", defaultJackpot, "Jackpot in USDC")
	createEpochCmd.Flags().StringVar(&flagPremium, "premium", defaultPremium, "Insurance premium in USDC")
	createEpochCmd.Flags().StringVar(&flagProbability, "probability", defaultProbability, "Jackpot win probability")
	createEpochCmd.Flags().StringVar(&flagTreasuryRatio, "treasury-ratio", defaultTreasuryRatio, "Share of the yield sent to the treasury")
	createEpochCmd.Flags().Uint8Var(&flagTier2PrizeShare, "tier2-share", defaultTier2PrizeShare, "Tier 2 prize share")
	createEpochCmd.Flags().Uint8Var(&flagTier3PrizeShare, "tier3-share", defaultTier3PrizeShare, "Tier 3 prize share")
	rootCmd.AddCommand(createEpochCmd)

	var (
		flagNumTickets     uint64
		flagTicketsURL     string
		flagTicketsHash    string
		flagTicketsVersion uint8
	)

	yieldWithdrawCmd := &cobra.Command{
		Use:   "yield-withdraw <epoch>",
		Short: "Move the epoch deposits to the investor as the admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}
			hash, err := hex.DecodeString(flagTicketsHash)
			if err != nil {
				return errors.Wrap(err, "invalid --tickets-hash")
			}

			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}
			adminKey := admin.Public().(ed25519.PublicKey)
			investor, err := cli.publicKey(roleInvestor)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			investorUsdc, setup, err := cli.usdcAccount(ctx, adminKey, investor)
			if err != nil {
				return err
			}

			ix, err := staking.NewYieldWithdrawByInvestorInstruction(
				cli.program,
				&staking.YieldWithdrawByInvestorInstructionAccounts{
					Admin:             adminKey,
					InvestorUsdcToken: investorUsdc,
				},
				&staking.YieldWithdrawByInvestorInstructionArgs{
					Epoch: epoch,
					TicketsInfo: staking.TicketsInfo{
						NumTickets: flagNumTickets,
						URL:        flagTicketsURL,
						Hash:       hash,
						Version:    flagTicketsVersion,
					},
				},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, admin, nil, append(setup, ix)...)
		},
	}
	yieldWithdrawCmd.Flags().Uint64Var(&flagNumTickets, "tickets", 1, "Number of tickets issued for the epoch")
	yieldWithdrawCmd.Flags().StringVar(&flagTicketsURL, "tickets-url", "", "Location of the ticket list")
	yieldWithdrawCmd.Flags().StringVar(&flagTicketsHash, "tickets-hash", "", "Hex encoded hash of the ticket list")
	yieldWithdrawCmd.Flags().Uint8Var(&flagTicketsVersion, "tickets-version", 0, "Version of the ticket list format")
	rootCmd.AddCommand(yieldWithdrawCmd)

	var flagMintReturn bool

	yieldDepositCmd := &cobra.Command{
		Use:   "yield-deposit <epoch> <return-amount>",
		Short: "Return the invested funds plus yield as the investor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}
			amount, err := usdc.ToQuarks(args[1])
			if err != nil {
				return err
			}

			investor, err := cli.keypair(roleInvestor)
			if err != nil {
				return err
			}
			investorKey := investor.Public().(ed25519.PublicKey)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			investorUsdc, setup, err := cli.usdcAccount(ctx, investorKey, investorKey)
			if err != nil {
				return err
			}
			if len(setup) > 0 {
				if err := cli.send(ctx, investor, nil, setup...); err != nil {
					return err
				}
			}
			if flagMintReturn {
				if err := cli.mintUSDC(ctx, investorUsdc, amount); err != nil {
					return err
				}
			}

			ix, err := staking.NewYieldDepositByInvestorInstruction(
				cli.program,
				&staking.YieldDepositByInvestorInstructionAccounts{
					Investor:          investorKey,
					InvestorUsdcToken: investorUsdc,
				},
				&staking.YieldDepositByInvestorInstructionArgs{
					Epoch:        epoch,
					ReturnAmount: amount,
				},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, investor, nil, ix)
		},
	}
	yieldDepositCmd.Flags().BoolVar(&flagMintReturn, "mint", false, "Mint the return amount to the investor first (admin must be the mint authority)")
	rootCmd.AddCommand(yieldDepositCmd)

	var flagFundMint string

	fundJackpotCmd := &cobra.Command{
		Use:   "fund-jackpot <epoch>",
		Short: "Fund the tier 1 prize of an epoch from the admin's USDC account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}

			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}
			adminKey := admin.Public().(ed25519.PublicKey)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			adminUsdc, setup, err := cli.usdcAccount(ctx, adminKey, adminKey)
			if err != nil {
				return err
			}
			if len(setup) > 0 {
				if err := cli.send(ctx, admin, nil, setup...); err != nil {
					return err
				}
			}
			if flagFundMint != "" {
				amount, err := usdc.ToQuarks(flagFundMint)
				if err != nil {
					return err
				}
				if err := cli.mintUSDC(ctx, adminUsdc, amount); err != nil {
					return err
				}
			}

			ix, err := staking.NewFundJackpotInstruction(
				cli.program,
				&staking.FundJackpotInstructionAccounts{
					Funder:          adminKey,
					FunderUsdcToken: adminUsdc,
				},
				&staking.FundJackpotInstructionArgs{Epoch: epoch},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, admin, nil, ix)
		},
	}
	fundJackpotCmd.Flags().StringVar(&flagFundMint, "mint", "", "Mint this USDC amount to the admin first")
	rootCmd.AddCommand(fundJackpotCmd)

	claimCmd := &cobra.Command{
		Use:   "claim-winning <epoch> <tier> [page] [winner-index]",
		Short: "Claim a prize won by the user",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim := staking.ClaimWinningInstructionArgs{}

			var err error
			if claim.Epoch, err = strconv.ParseUint(args[0], 10, 64); err != nil {
				return errors.Wrap(err, "invalid epoch")
			}
			tier, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return errors.Wrap(err, "invalid tier")
			}
			claim.Tier = uint8(tier)
			if len(args) > 2 {
				page, err := strconv.ParseUint(args[2], 10, 32)
				if err != nil {
					return errors.Wrap(err, "invalid page")
				}
				claim.Page = uint32(page)
			}
			if len(args) > 3 {
				index, err := strconv.ParseUint(args[3], 10, 32)
				if err != nil {
					return errors.Wrap(err, "invalid winner index")
				}
				claim.WinnerIndex = uint32(index)
			}

			user, err := cli.keypair(roleUser)
			if err != nil {
				return err
			}

			ix, err := staking.NewClaimWinningInstruction(
				cli.program,
				&staking.ClaimWinningInstructionAccounts{Owner: user.Public().(ed25519.PublicKey)},
				&claim,
			)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return cli.send(ctx, user, nil, ix)
		},
	}
	rootCmd.AddCommand(claimCmd)
}
