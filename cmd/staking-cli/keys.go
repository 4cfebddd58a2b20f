package main

import (
	"crypto/ed25519"
	"encoding/json"
	"math"
	"os"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Keypair roles, loaded from <keys dir>/<role>.json.
const (
	roleSuperAdmin = "super_admin"
	roleAdmin      = "admin"
	roleInvestor   = "investor"
	roleUser       = "user"
)

var errInvalidKeypair = errors.New("invalid keypair file")

// loadKeypair reads a keypair file in the solana-keygen format: a JSON array
// of the 64 secret key bytes.
func loadKeypair(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keypair %s", path)
	}

	key, err := parseKeypair(raw)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return key, nil
}

func parseKeypair(raw []byte) (ed25519.PrivateKey, error) {
	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrap(errInvalidKeypair, err.Error())
	}
	if len(values) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errInvalidKeypair, "expected %d bytes, got %d", ed25519.PrivateKeySize, len(values))
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range values {
		if v < 0 || v > math.MaxUint8 {
			return nil, errors.Wrapf(errInvalidKeypair, "byte %d out of range", i)
		}
		key[i] = byte(v)
	}

	// The trailing half must be the public key of the seed.
	derived := ed25519.NewKeyFromSeed(key.Seed())
	if !derived.Equal(key) {
		return nil, errors.Wrap(errInvalidKeypair, "public key does not match secret")
	}
	return key, nil
}

func parsePublicKey(s string) (ed25519.PublicKey, error) {
	key, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid public key %q", s)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid public key %q: expected %d bytes", s, ed25519.PublicKeySize)
	}
	return key, nil
}
