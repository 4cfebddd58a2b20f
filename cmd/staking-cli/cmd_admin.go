package main

import (
	"crypto/ed25519"
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/staking"
	"github.com/nezha-game/staking-client/pkg/solana/system"
	"github.com/nezha-game/staking-client/pkg/solana/token"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

const lamportsPerSol = 1_000_000_000

var withdrawVaults = map[string]staking.WithdrawVault{
	staking.WithdrawVaultInsurance.String(): staking.WithdrawVaultInsurance,
	staking.WithdrawVaultTreasury.String():  staking.WithdrawVaultTreasury,
}

var rotateKeyTypes = map[string]staking.RotateKeyType{
	staking.RotateKeyTypeSuperAdmin.String(): staking.RotateKeyTypeSuperAdmin,
	staking.RotateKeyTypeAdmin.String():      staking.RotateKeyTypeAdmin,
	staking.RotateKeyTypeInvestor.String():   staking.RotateKeyTypeInvestor,
}

func init() {
	withdrawCmd := &cobra.Command{
		Use:   "withdraw-vault <insurance|treasury> [amount]",
		Short: "Withdraw from a protocol vault to the admin's USDC account (defaults to the full balance)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, ok := withdrawVaults[args[0]]
			if !ok {
				return errors.Errorf("unknown vault %q", args[0])
			}

			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}
			adminKey := admin.Public().(ed25519.PublicKey)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			var amount int64
			if len(args) > 1 {
				if amount, err = usdc.ToQuarks(args[1]); err != nil {
					return err
				}
			} else {
				vaultKey, err := staking.GetWithdrawVaultAddress(cli.program, vault)
				if err != nil {
					return err
				}
				balance, err := token.NewAccounts(cli.client, cli.usdcMint).Balance(ctx, vaultKey, cli.commitment)
				if err != nil {
					return errors.Wrapf(err, "failed to get %s vault balance", vault)
				}
				amount = int64(balance)
			}

			adminUsdc, setup, err := cli.usdcAccount(ctx, adminKey, adminKey)
			if err != nil {
				return err
			}

			cli.log.WithFields(logrus.Fields{
				"vault":  vault.String(),
				"amount": usdc.FromQuarks(amount),
			}).Info("withdrawing from vault")

			ix, err := staking.NewWithdrawVaultInstruction(
				cli.program,
				&staking.WithdrawVaultInstructionAccounts{
					Admin:       adminKey,
					Destination: adminUsdc,
				},
				&staking.WithdrawVaultInstructionArgs{
					Vault:  vault,
					Amount: amount,
				},
			)
			if err != nil {
				return err
			}
			return cli.send(ctx, admin, nil, append(setup, ix)...)
		},
	}
	rootCmd.AddCommand(withdrawCmd)

	rotateCmd := &cobra.Command{
		Use:   "rotate-key <super-admin|admin|investor> <new-key>",
		Short: "Replace a protocol key as the super admin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyType, ok := rotateKeyTypes[args[0]]
			if !ok {
				return errors.Errorf("unknown key type %q", args[0])
			}
			newKey, err := parsePublicKey(args[1])
			if err != nil {
				return err
			}
			superAdmin, err := cli.keypair(roleSuperAdmin)
			if err != nil {
				return err
			}

			ix, err := staking.NewRotateKeyInstruction(
				cli.program,
				&staking.RotateKeyInstructionAccounts{
					SuperAdmin: superAdmin.Public().(ed25519.PublicKey),
					NewKey:     newKey,
				},
				&staking.RotateKeyInstructionArgs{KeyType: keyType},
			)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return cli.send(ctx, superAdmin, nil, ix)
		},
	}
	rootCmd.AddCommand(rotateCmd)

	var flagMinSol float64

	replenishCmd := &cobra.Command{
		Use:   "replenish-sols",
		Short: "Airdrop SOL to every role whose balance is below the minimum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lamports := uint64(flagMinSol * lamportsPerSol)

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			var pending []solana.Signature
			for _, role := range []string{roleSuperAdmin, roleAdmin, roleUser, roleInvestor} {
				key, err := cli.publicKey(role)
				if err != nil {
					return err
				}

				info, err := cli.client.GetAccountInfo(ctx, key, cli.commitment)
				if err != nil && !errors.Is(err, solana.ErrNoAccountInfo) {
					return err
				}
				if info.Lamports >= lamports {
					continue
				}

				sig, err := cli.client.RequestAirdrop(ctx, key, lamports, cli.commitment)
				if err != nil {
					return errors.Wrapf(err, "failed to airdrop to %s", role)
				}
				cli.log.WithFields(logrus.Fields{
					"role":      role,
					"signature": base58.Encode(sig[:]),
				}).Info("requested airdrop")
				pending = append(pending, sig)
			}

			for _, sig := range pending {
				status, err := solana.PollSignatureStatus(ctx, cli.client, sig, cli.commitment)
				if err != nil {
					return err
				}
				if status.ErrorResult != nil {
					return status.ErrorResult
				}
			}
			return nil
		},
	}
	replenishCmd.Flags().Float64Var(&flagMinSol, "min", 1.0, "Minimum SOL balance per role")
	rootCmd.AddCommand(replenishCmd)

	transferCmd := &cobra.Command{
		Use:   "transfer-sol <destination> <lamports>",
		Short: "Transfer lamports from the admin to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}
			lamports, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid lamports")
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return cli.send(ctx, admin, nil, system.Transfer(admin.Public().(ed25519.PublicKey), dest, lamports))
		},
	}
	rootCmd.AddCommand(transferCmd)

	faucetCmd := &cobra.Command{
		Use:   "faucet <wallet> <amount>",
		Short: "Airdrop SOL and mint USDC to a wallet (admin must be the mint authority)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}
			amount, err := usdc.ToQuarks(args[1])
			if err != nil {
				return err
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			sig, err := cli.client.RequestAirdrop(ctx, wallet, 2*lamportsPerSol, cli.commitment)
			if err != nil {
				return errors.Wrap(err, "failed to request airdrop")
			}
			fmt.Println(base58.Encode(sig[:]))

			walletUsdc, setup, err := cli.usdcAccount(ctx, admin.Public().(ed25519.PublicKey), wallet)
			if err != nil {
				return err
			}
			if len(setup) > 0 {
				if err := cli.send(ctx, admin, nil, setup...); err != nil {
					return err
				}
			}
			return cli.mintUSDC(ctx, walletUsdc, amount)
		},
	}
	rootCmd.AddCommand(faucetCmd)
}
