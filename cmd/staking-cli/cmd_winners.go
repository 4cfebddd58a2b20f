package main

import (
	"context"
	"crypto/ed25519"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/solana/computebudget"
	"github.com/nezha-game/staking-client/pkg/solana/staking"
)

func init() {
	createMetaCmd := &cobra.Command{
		Use:   "create-epoch-winners-meta <epoch> <winners-file>",
		Short: "Create the winners meta of an epoch from a winners file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}
			winners, err := loadWinners(args[1])
			if err != nil {
				return err
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()
			return createWinnersMeta(ctx, admin, epoch, winners)
		},
	}
	rootCmd.AddCommand(createMetaCmd)

	var (
		flagWithMeta  bool
		flagStartPage uint32
	)

	publishCmd := &cobra.Command{
		Use:   "publish-winners <epoch> <winners-file>",
		Short: "Publish the winners of an epoch, one transaction per page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid epoch")
			}
			winners, err := loadWinners(args[1])
			if err != nil {
				return err
			}
			admin, err := cli.keypair(roleAdmin)
			if err != nil {
				return err
			}

			vrfProgram, err := cli.vrfProgram(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := cli.withTimeout(cmd.Context())
			defer cancel()

			if flagWithMeta {
				if err := createWinnersMeta(ctx, admin, epoch, winners); err != nil {
					return err
				}
			}

			pages := winnersPages(winners)
			for page := int(flagStartPage); page < len(pages); page++ {
				ix, err := staking.NewPublishWinnersInstruction(
					cli.program,
					&staking.PublishWinnersInstructionAccounts{
						Admin:      admin.Public().(ed25519.PublicKey),
						VrfProgram: vrfProgram,
					},
					&staking.PublishWinnersInstructionArgs{
						Epoch:   epoch,
						Page:    uint32(page),
						Winners: pages[page],
					},
				)
				if err != nil {
					return err
				}

				cli.log.WithFields(logrus.Fields{
					"epoch": epoch,
					"page":  page,
					"pages": len(pages),
				}).Info("publishing winners page")

				limit := computebudget.SetComputeUnitLimit(computebudget.MaxComputeUnitLimit)
				if err := cli.send(ctx, admin, nil, limit, ix); err != nil {
					return errors.Wrapf(err, "failed to publish page %d (resume with --start-page %d)", page, page)
				}
			}
			return nil
		},
	}
	publishCmd.Flags().BoolVar(&flagWithMeta, "with-meta", false, "Create the epoch winners meta before publishing")
	publishCmd.Flags().Uint32Var(&flagStartPage, "start-page", 0, "First page to publish")
	rootCmd.AddCommand(publishCmd)
}

func createWinnersMeta(ctx context.Context, admin ed25519.PrivateKey, epoch uint64, winners []staking.WinnerInput) error {
	vrfProgram, err := cli.vrfProgram(ctx)
	if err != nil {
		return err
	}

	ix, err := staking.NewCreateEpochWinnersMetaInstruction(
		cli.program,
		&staking.CreateEpochWinnersMetaInstructionAccounts{
			Admin:      admin.Public().(ed25519.PublicKey),
			VrfProgram: vrfProgram,
		},
		&staking.CreateEpochWinnersMetaInstructionArgs{
			Epoch: epoch,
			Meta:  winnersMeta(winners),
		},
	)
	if err != nil {
		return err
	}
	return cli.send(ctx, admin, nil, ix)
}
