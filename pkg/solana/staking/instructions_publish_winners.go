package staking

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/binary"
)

type PublishWinnersInstructionAccounts struct {
	Admin      ed25519.PublicKey
	VrfProgram ed25519.PublicKey
}

type PublishWinnersInstructionArgs struct {
	Epoch   uint64
	Page    uint32
	Winners []WinnerInput
}

// NewPublishWinnersInstruction writes one page of an epoch's winners.
func NewPublishWinnersInstruction(
	program ed25519.PublicKey,
	accounts *PublishWinnersInstructionAccounts,
	args *PublishWinnersInstructionArgs,
) (solana.Instruction, error) {
	if err := validateKeys(
		namedKey{"program", program},
		namedKey{"admin", accounts.Admin},
		namedKey{"vrf program", accounts.VrfProgram},
	); err != nil {
		return solana.Instruction{}, err
	}

	if len(args.Winners) == 0 {
		return solana.Instruction{}, errors.Wrap(ErrInvalidArgument, "winners page is empty")
	}
	if len(args.Winners) > MaxWinnersPerPage {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidArgument, "winners page exceeds %d entries", MaxWinnersPerPage)
	}

	parts := [][]byte{
		binary.Uint32(args.Page),
		binary.Uint32(uint32(len(args.Winners))),
	}
	for i := range args.Winners {
		w := &args.Winners[i]
		if err := validateKey(fmt.Sprintf("winner %d address", i), w.Address); err != nil {
			return solana.Instruction{}, err
		}
		if err := validateTier(w.Tier); err != nil {
			return solana.Instruction{}, errors.Wrapf(err, "winner %d", i)
		}
		parts = append(parts, w.encode())
	}

	var r resolver
	latestEpoch := r.keep(GetLatestEpochAddress(program))
	epoch := r.keep(GetEpochAddress(program, args.Epoch))
	winnersMeta := r.keep(GetEpochWinnersMetaAddress(program, args.Epoch))
	winnersPage := r.keep(GetEpochWinnersPageAddress(program, args.Epoch, args.Page))
	vrfRequest := r.keep(GetVrfRequestAddress(accounts.VrfProgram, args.Epoch))
	if r.err != nil {
		return solana.Instruction{}, r.err
	}

	return newInstruction(
		program,
		InstructionTypePublishWinners,
		binary.Concat(parts...),
		solana.WritableSigner(accounts.Admin),
		solana.Writable(latestEpoch),
		solana.Writable(epoch),
		solana.Writable(winnersMeta),
		solana.Writable(winnersPage),
		solana.Readonly(vrfRequest),
		solana.Readonly(SYSTEM_PROGRAM_ID),
		solana.Readonly(SYSVAR_RENT_PUBKEY),
	), nil
}
