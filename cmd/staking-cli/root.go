package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nezha-game/staking-client/pkg/config/env"
	"github.com/nezha-game/staking-client/pkg/rate"
	"github.com/nezha-game/staking-client/pkg/solana"
	"github.com/nezha-game/staking-client/pkg/solana/memo"
	"github.com/nezha-game/staking-client/pkg/solana/staking"
	"github.com/nezha-game/staking-client/pkg/usdc"
)

const (
	rpcURLConfigEnvName     = "SOLANA_RPC_URL"
	programConfigEnvName    = "SOLANA_STAKING_PROGRAM_ID"
	vrfProgramConfigEnvName = "SOLANA_VRF_PROGRAM_ID"
	usdcMintConfigEnvName   = "SOLANA_USDC_MINT"
	keysDirConfigEnvName    = "STAKING_KEYS_DIR"
	timeoutConfigEnvName    = "STAKING_CLI_TIMEOUT"
	rateLimitConfigEnvName  = "STAKING_RPC_RATE_LIMIT"

	defaultKeysDir = "keys"
	defaultTimeout = 2 * time.Minute
)

var (
	rpcURLConfig     = env.NewStringConfig(rpcURLConfigEnvName, "devnet")
	programConfig    = env.NewPublicKeyConfig(programConfigEnvName, nil)
	vrfProgramConfig = env.NewPublicKeyConfig(vrfProgramConfigEnvName, nil)
	usdcMintConfig   = env.NewPublicKeyConfig(usdcMintConfigEnvName, usdc.TokenMint)
	keysDirConfig    = env.NewStringConfig(keysDirConfigEnvName, defaultKeysDir)
	timeoutConfig    = env.NewDurationConfig(timeoutConfigEnvName, defaultTimeout)

	// Requests per second per RPC method. Zero disables throttling.
	rateLimitConfig = env.NewUint64Config(rateLimitConfigEnvName, 0)
)

var (
	flagEnvFile    string
	flagCommitment string
	flagVerbose    bool
	flagMemo       string
)

// cli is populated before any subcommand runs.
var cli *app

var rootCmd = &cobra.Command{
	Use:           "staking-cli",
	Short:         "Operate the Nezha staking program",
	Long:          "Derive staking addresses and submit staking program instructions to a Solana cluster.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		var files []string
		if flagEnvFile != "" {
			files = append(files, flagEnvFile)
		}
		if err := env.Load(files...); err != nil {
			return err
		}

		commitment, err := parseCommitment(flagCommitment)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), commitment)
		if err != nil {
			return err
		}
		cli = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Path to a .env file (defaults to ./.env)")
	rootCmd.PersistentFlags().StringVar(&flagCommitment, "commitment", "confirmed", "Commitment level: processed|confirmed|finalized")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagMemo, "memo", "", "Memo attached to every transaction, signed by the payer")
}

func parseCommitment(s string) (solana.Commitment, error) {
	switch s {
	case "processed":
		return solana.CommitmentProcessed, nil
	case "confirmed", "":
		return solana.CommitmentConfirmed, nil
	case "finalized":
		return solana.CommitmentFinalized, nil
	}
	return solana.Commitment{}, errors.Errorf("unknown commitment %q", s)
}

type app struct {
	log *logrus.Entry

	client     solana.Client
	sender     solana.Sender
	commitment solana.Commitment
	timeout    time.Duration

	program    ed25519.PublicKey
	usdcMint   ed25519.PublicKey
	keysDir    string
	memo       string
}

func newApp(ctx context.Context, commitment solana.Commitment) (*app, error) {
	program, err := requiredPublicKey(ctx, programConfigEnvName, programConfig.GetSafe)
	if err != nil {
		return nil, err
	}
	usdcMint, err := requiredPublicKey(ctx, usdcMintConfigEnvName, usdcMintConfig.GetSafe)
	if err != nil {
		return nil, err
	}

	cluster, err := rpcURLConfig.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", rpcURLConfigEnvName)
	}
	rpcURL, err := solana.Endpoint(cluster)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", rpcURLConfigEnvName)
	}
	timeout, err := timeoutConfig.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", timeoutConfigEnvName)
	}

	perSecond, err := rateLimitConfig.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", rateLimitConfigEnvName)
	}
	var limiter rate.Limiter = rate.NoLimiter{}
	if perSecond > 0 {
		limiter = rate.NewLocalRateLimiter(float64(perSecond))
	}

	client := solana.NewWithLimiter(rpcURL, nil, limiter)

	log := logrus.StandardLogger().WithField("type", "cmd/staking-cli")
	log.WithFields(logrus.Fields{
		"rpc":     rpcURL,
		"program": base58.Encode(program),
	}).Debug("configured")

	return &app{
		log:        log,
		client:     client,
		sender:     solana.NewRPCSender(client, commitment),
		commitment: commitment,
		timeout:    timeout,
		program:    program,
		usdcMint:   usdcMint,
		keysDir:    keysDirConfig.Get(ctx),
		memo:       flagMemo,
	}, nil
}

func requiredPublicKey(ctx context.Context, name string, get func(context.Context) (ed25519.PublicKey, error)) (ed25519.PublicKey, error) {
	key, err := get(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	if len(key) == 0 {
		return nil, errors.Errorf("%s is not set", name)
	}
	return key, nil
}

// vrfProgram resolves the VRF program id. Only commands that touch VRF
// accounts require it.
func (a *app) vrfProgram(ctx context.Context) (ed25519.PublicKey, error) {
	return requiredPublicKey(ctx, vrfProgramConfigEnvName, vrfProgramConfig.GetSafe)
}

// keypair loads keys/<role>.json.
func (a *app) keypair(role string) (ed25519.PrivateKey, error) {
	return loadKeypair(filepath.Join(a.keysDir, role+".json"))
}

func (a *app) publicKey(role string) (ed25519.PublicKey, error) {
	key, err := a.keypair(role)
	if err != nil {
		return nil, err
	}
	return key.Public().(ed25519.PublicKey), nil
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// send submits the instructions and prints the resulting signature. Failures
// of a staking program instruction are reported by name.
func (a *app) send(ctx context.Context, payer ed25519.PrivateKey, signers []ed25519.PrivateKey, instructions ...solana.Instruction) error {
	if a.memo != "" {
		note, err := memo.Instruction(a.memo, payer.Public().(ed25519.PublicKey))
		if err != nil {
			return err
		}
		instructions = append(instructions, note)
	}

	sig, err := a.sender.Send(ctx, payer, signers, instructions...)
	if code, ok := staking.GetInstructionProgramError(err, a.program, instructions); ok {
		a.log.WithError(err).WithField("code", uint32(code)).Warn("staking program rejected transaction")
		return errors.Wrap(code, "staking program error")
	} else if err != nil {
		return err
	}

	encoded := base58.Encode(sig[:])
	a.log.WithField("signature", encoded).Info("transaction confirmed")
	fmt.Println(encoded)
	return nil
}

func printKey(name string, key ed25519.PublicKey) {
	fmt.Printf("%-28s %s\n", name, base58.Encode(key))
}
