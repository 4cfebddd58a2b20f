package env

import (
	"context"
	"crypto/ed25519"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/config"
	"github.com/nezha-game/staking-client/pkg/config/wrapper"
)

// Load populates the process environment from the given .env files, or
// ".env" when none are given. Variables that are already set win. Missing
// files are skipped.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(err, "failed to load env files")
	}
	return nil
}

type conf struct {
	key string
}

// NewConfig returns a config backed by an environment variable. The variable
// is read on every Get so values loaded after construction are observed.
func NewConfig(key string) config.Config {
	return &conf{
		key: strings.ToUpper(key),
	}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	val := os.Getenv(c.key)
	if len(val) == 0 {
		return nil, config.ErrNoValue
	}

	return []byte(val), nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

// NewUint64Config creates a env-based uint64 config
func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}

// NewStringConfig creates a env-based string config
func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

// NewDurationConfig creates a env-based duration config
func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}

// NewPublicKeyConfig creates a env-based base58 public key config
func NewPublicKeyConfig(key string, defaultValue ed25519.PublicKey) config.PublicKey {
	return wrapper.NewPublicKeyConfig(NewConfig(key), defaultValue)
}
