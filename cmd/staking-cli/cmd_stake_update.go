package main

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/staking"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

// stakeUpdateAmount parses a positive USDC magnitude. Withdrawals are sent to
// the program as negative amounts.
func stakeUpdateAmount(arg string, withdraw bool) (int64, error) {
	amount, err := usdc.ToQuarks(arg)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, errors.Errorf("amount must be positive, got %s (use --withdraw for withdrawals)", arg)
	}
	if withdraw {
		return -amount, nil
	}
	return amount, nil
}

func init() {
	var flagMint, flagWithdraw bool

	requestCmd := &cobra.Command{
		Use:   "request-stake-update <amount> [--withdraw]",
		Short: "Request a deposit, or a withdrawal with --withdraw, as the user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagMint && flagWithdraw {
				return errors.New("--mint only applies to deposits")
			}
			amount, err := stakeUpdateAmount(args[0], false)
			if err != nil {
				return err
			}

			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}
			user, err := cli.keypair(roleUser)
			if err != nil {
				return err
			}
			userKey := user.Public().(ed25519.PublicKey)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			userUsdc, setup, err := cli.usdcAccount(ctx, admin.Public().(ed25519.PublicKey), userKey)
			if err != nil {
				return err
			}
			if len(setup) > 0 {
				if err := cli.send(ctx, admin, nil, setup...); err != nil {
					return err
				}
			}

			if flagMint {
				if err := cli.mintUSDC(ctx, userUsdc, amount); err != nil {
					return err
				}
			}

			accounts := &staking.RequestStakeUpdateInstructionAccounts{
				Owner:          userKey,
				OwnerUsdcToken: userUsdc,
			}

			var ix solana.Instruction
			if flagWithdraw {
				ix, err = staking.NewWithdrawInstruction(cli.program, accounts, amount)
			} else {
				ix, err = staking.NewDepositInstruction(cli.program, accounts, amount)
			}
			if err != nil {
				return err
			}
			return cli.send(ctx, user, nil, ix)
		},
	}
	requestCmd.Flags().BoolVar(&flagMint, "mint", false, "Mint the deposit amount to the user first (admin must be the mint authority)")
	requestCmd.Flags().BoolVar(&flagWithdraw, "withdraw", false, "Request a withdrawal of the amount instead of a deposit")
	rootCmd.AddCommand(requestCmd)

	approveCmd := &cobra.Command{
		Use:   "approve-stake-update [owner]",
		Short: "Approve the pending stake update request of an owner as the admin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ownerArg(args)
			if err != nil {
				return err
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			// The program checks the approved amount against the request.
			request, err := staking.GetStakeUpdateRequest(ctx, cli.client, cli.program, owner, cli.commitment)
			if err != nil {
				return err
			}

			ix, err := staking.NewApproveStakeUpdateInstruction(
				cli.program,
				&staking.ApproveStakeUpdateInstructionAccounts{
					Admin: admin.Public().(ed25519.PublicKey),
					Owner: owner,
				},
				&staking.ApproveStakeUpdateInstructionArgs{Amount: request.Amount},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, admin, nil, ix)
		},
	}
	rootCmd.AddCommand(approveCmd)

	completeCmd := &cobra.Command{
		Use:   "complete-stake-update [owner]",
		Short: "Complete the queued stake update request of an owner, paid by the admin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ownerArg(args)
			if err != nil {
				return err
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}
			adminKey := admin.Public().(ed25519.PublicKey)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			ownerUsdc, setup, err := cli.usdcAccount(ctx, adminKey, owner)
			if err != nil {
				return err
			}

			ix, err := staking.NewCompleteStakeUpdateInstruction(
				cli.program,
				&staking.CompleteStakeUpdateInstructionAccounts{
					Payer:          adminKey,
					Owner:          owner,
					OwnerUsdcToken: ownerUsdc,
				},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, admin, nil, append(setup, ix)...)
		},
	}
	rootCmd.AddCommand(completeCmd)

	var flagAsAdmin, flagCancelWithdraw bool

	cancelCmd := &cobra.Command{
		Use:   "cancel-stake-update <amount> [--withdraw]",
		Short: "Cancel the user's pending stake update request",
		Long:  "Cancel the user's pending stake update request. The amount must match the request; pass --withdraw when cancelling a withdrawal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := stakeUpdateAmount(args[0], flagCancelWithdraw)
			if err != nil {
				return err
			}
			user, err := cli.keypair(roleUser)
			if err != nil {
				return err
			}
			userKey := user.Public().(ed25519.PublicKey)

			payer := user
			accounts := &staking.CancelStakeUpdateInstructionAccounts{Owner: userKey}
			if flagAsAdmin {
				if payer, err = cli.keypair(roleAdmin); err != nil {
					return err
				}
				accounts.Admin = payer.Public().(ed25519.PublicKey)
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			var setup []solana.Instruction
			accounts.OwnerUsdcToken, setup, err = cli.usdcAccount(ctx, payer.Public().(ed25519.PublicKey), userKey)
			if err != nil {
				return err
			}

			ix, err := staking.NewCancelStakeUpdateInstruction(
				cli.program,
				accounts,
				&staking.CancelStakeUpdateInstructionArgs{Amount: amount},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, payer, nil, append(setup, ix)...)
		},
	}
	cancelCmd.Flags().BoolVar(&flagAsAdmin, "as-admin", false, "Sign the cancellation with the admin key instead of the user key")
	cancelCmd.Flags().BoolVar(&flagCancelWithdraw, "withdraw", false, "The pending request is a withdrawal")
	rootCmd.AddCommand(cancelCmd)
}
