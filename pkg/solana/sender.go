package solana

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nezha-game/staking-client/pkg/retry"
	"github.com/nezha-game/staking-client/pkg/retry/backoff"
)

const (
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is the rate at which signature statuses are polled.
	PollRate = (time.Second / slotsPerSec) / 2

	// Poll rate is ~2x the slot rate, and we want to wait ~32 slots
	sigStatusPollLimit = 2 * 32
)

var errConfirmationsNotReached = errors.New("confirmations not reached")

// Sender signs and submits instructions produced by the program builders.
type Sender interface {
	// Send compiles the instructions into a single transaction paid for by
	// payer, signs it with payer and signers, submits it, and blocks until the
	// sender's commitment level is reached or ctx is done.
	Send(ctx context.Context, payer ed25519.PrivateKey, signers []ed25519.PrivateKey, instructions ...Instruction) (Signature, error)
}

type rpcSender struct {
	log        *logrus.Entry
	client     Client
	commitment Commitment
}

// NewRPCSender returns a Sender that submits through the provided Client.
func NewRPCSender(client Client, commitment Commitment) Sender {
	return &rpcSender{
		log:        logrus.StandardLogger().WithField("type", "solana/sender"),
		client:     client,
		commitment: commitment,
	}
}

func (s *rpcSender) Send(ctx context.Context, payer ed25519.PrivateKey, signers []ed25519.PrivateKey, instructions ...Instruction) (Signature, error) {
	if len(instructions) == 0 {
		return Signature{}, errors.New("no instructions to send")
	}

	bh, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}

	txn := NewTransaction(payer.Public().(ed25519.PublicKey), instructions...)
	txn.SetBlockhash(bh)
	if err := txn.Sign(append([]ed25519.PrivateKey{payer}, signers...)...); err != nil {
		return Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	var sig Signature
	copy(sig[:], txn.Signature())

	log := s.log.WithField("signature", base58.Encode(sig[:]))
	log.Debug("submitting transaction")

	if _, err := s.client.SubmitTransaction(ctx, txn, s.commitment); err != nil {
		log.WithError(err).Warn("failed to submit transaction")
		return sig, err
	}

	status, err := PollSignatureStatus(ctx, s.client, sig, s.commitment)
	if err != nil {
		return sig, err
	}
	if status.ErrorResult != nil {
		log.WithError(status.ErrorResult).Warn("transaction failed")
		return sig, status.ErrorResult
	}

	log.WithField("slot", status.Slot).Debug("transaction confirmed")
	return sig, nil
}

// PollSignatureStatus polls until the signature reaches the commitment level,
// the transaction fails, the poll limit is hit, or ctx is done. A failed
// transaction is returned as a status with a non-nil ErrorResult.
func PollSignatureStatus(ctx context.Context, client Client, sig Signature, commitment Commitment) (*SignatureStatus, error) {
	var status *SignatureStatus
	_, err := retry.Retry(
		ctx,
		func() error {
			statuses, err := client.GetSignatureStatuses(ctx, []Signature{sig})
			if err != nil {
				return err
			}

			if len(statuses) == 0 || statuses[0] == nil {
				return ErrSignatureNotFound
			}

			status = statuses[0]
			if status.ErrorResult != nil || status.Reached(commitment) {
				return nil
			}

			return errConfirmationsNotReached
		},
		retry.RetriableErrors(ErrSignatureNotFound, errConfirmationsNotReached),
		retry.Limit(sigStatusPollLimit),
		retry.Backoff(backoff.Constant(PollRate), PollRate),
	)
	if err != nil {
		return nil, err
	}

	return status, nil
}
