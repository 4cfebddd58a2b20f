package main

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/solana/staking"
	"github.com/nezha-game/staking-client/pkg/solana/token"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

func init() {
	var (
		flagOwner string
		flagEpoch uint64
		flagPage  uint32
	)

	addressesCmd := &cobra.Command{
		Use:   "addresses",
		Short: "Print the derived staking program addresses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			program := cli.program

			global := []struct {
				name   string
				derive func(ed25519.PublicKey) (ed25519.PublicKey, error)
			}{
				{"latest epoch", staking.GetLatestEpochAddress},
				{"vault authority", staking.GetVaultAuthorityAddress},
				{"francium authority", staking.GetFranciumAuthorityAddress},
				{"deposit vault", staking.GetDepositVaultAddress},
				{"pending deposit vault", staking.GetPendingDepositVaultAddress},
				{"treasury vault", staking.GetTreasuryVaultAddress},
				{"insurance vault", staking.GetInsuranceVaultAddress},
			}
			for _, g := range global {
				key, err := g.derive(program)
				if err != nil {
					return errors.Wrapf(err, "failed to derive %s", g.name)
				}
				printKey(g.name, key)
			}

			for tier := uint8(staking.MinTier); tier <= staking.MaxTier; tier++ {
				key, err := staking.GetPrizeVaultAddress(program, tier)
				if err != nil {
					return err
				}
				printKey(fmt.Sprintf("tier %d prize vault", tier), key)
			}

			if cmd.Flags().Changed("epoch") {
				if err := printEpochAddresses(cmd.Context(), flagEpoch, flagPage); err != nil {
					return err
				}
			}

			if flagOwner != "" {
				owner, err := parsePublicKey(flagOwner)
				if err != nil {
					return err
				}
				if err := printOwnerAddresses(owner, flagEpoch, cmd.Flags().Changed("epoch")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addressesCmd.Flags().StringVar(&flagOwner, "owner", "", "Also derive the accounts of this owner")
	addressesCmd.Flags().Uint64Var(&flagEpoch, "epoch", 0, "Also derive the accounts of this epoch")
	addressesCmd.Flags().Uint32Var(&flagPage, "page", 0, "Winners page to derive with --epoch")
	rootCmd.AddCommand(addressesCmd)

	showCmd := &cobra.Command{
		Use:   "show-stake-update-request [owner]",
		Short: "Show the pending stake update request of an owner (defaults to the user key)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ownerArg(args)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			request, err := staking.GetStakeUpdateRequest(ctx, cli.client, cli.program, owner, cli.commitment)
			if errors.Is(err, staking.ErrStakeUpdateRequestNotFound) {
				fmt.Println("no pending stake update request")
				return nil
			} else if err != nil {
				return err
			}

			kind := "withdrawal"
			if request.IsDeposit() {
				kind = "deposit"
			}
			printKey("owner", request.Owner)
			fmt.Printf("%-28s %s (%s)\n", "amount", usdc.FromQuarks(request.Amount), kind)
			fmt.Printf("%-28s %s\n", "state", request.State)
			fmt.Printf("%-28s %d\n", "contract version", request.ContractVersion)
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)
}

func printEpochAddresses(ctx context.Context, epoch uint64, page uint32) error {
	program := cli.program

	key, err := staking.GetEpochAddress(program, epoch)
	if err != nil {
		return err
	}
	printKey("epoch", key)

	if key, err = staking.GetEpochWinnersMetaAddress(program, epoch); err != nil {
		return err
	}
	printKey("epoch winners meta", key)

	if key, err = staking.GetEpochWinnersPageAddress(program, epoch, page); err != nil {
		return err
	}
	printKey(fmt.Sprintf("epoch winners page %d", page), key)

	for tier := uint8(staking.MinTier); tier <= staking.MaxTier; tier++ {
		if key, err = staking.GetEpochTierWinnersAddress(program, epoch, tier); err != nil {
			return err
		}
		printKey(fmt.Sprintf("epoch tier %d winners", tier), key)
	}

	vrfProgram, err := cli.vrfProgram(ctx)
	if err != nil {
		return err
	}
	if key, err = staking.GetVrfRequestAddress(vrfProgram, epoch); err != nil {
		return err
	}
	printKey("vrf request", key)
	return nil
}

func printOwnerAddresses(owner ed25519.PublicKey, epoch uint64, withEpoch bool) error {
	program := cli.program

	key, err := staking.GetStakeAddress(program, owner)
	if err != nil {
		return err
	}
	printKey("stake", key)

	if key, err = staking.GetStakeUpdateRequestAddress(program, owner); err != nil {
		return err
	}
	printKey("stake update request", key)

	if key, err = token.GetAssociatedAccount(owner, cli.usdcMint); err != nil {
		return err
	}
	printKey("usdc token account", key)

	if withEpoch {
		if key, err = staking.GetStakingTicketAddress(program, epoch, owner); err != nil {
			return err
		}
		printKey("staking ticket", key)
	}
	return nil
}

// ownerArg returns the base58 owner in args, or the user key.
func ownerArg(args []string) (ed25519.PublicKey, error) {
	if len(args) > 0 {
		return parsePublicKey(args[0])
	}
	return cli.publicKey(roleUser)
}
