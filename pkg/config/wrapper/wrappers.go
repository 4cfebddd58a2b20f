package wrapper

import (
	"context"
	"crypto/ed25519"
	"strconv"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// ErrInvalidPublicKey indicates a value could not be decoded into an ed25519 public key
var ErrInvalidPublicKey = errors.New("config: invalid public key")

// Converter maps a raw config value into T. Values read from the environment
// arrive as []byte.
type Converter[T any] func(raw interface{}) (T, error)

// ValueConfig is a utility wrapper for a typed config
type ValueConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      Converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

// NewValueConfig returns a new typed config utility wrapper
func NewValueConfig[T any](override config.Config, defaultValue T, convert Converter[T]) config.Value[T] {
	return &ValueConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *ValueConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if errors.Is(err, config.ErrNoValue) {
		c.set(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.set(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *ValueConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *ValueConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *ValueConfig[T]) set(v T) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return NewValueConfig(override, defaultValue, func(raw interface{}) (uint64, error) {
		switch v := raw.(type) {
		case []byte:
			return strconv.ParseUint(string(v), 10, 64)
		case uint64:
			return v, nil
		}
		return 0, ErrUnsuportedConversion
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return NewValueConfig(override, defaultValue, func(raw interface{}) (string, error) {
		switch v := raw.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		}
		return "", ErrUnsuportedConversion
	})
}

// NewDurationConfig returns a new duration config utility wrapper
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return NewValueConfig(override, defaultValue, func(raw interface{}) (time.Duration, error) {
		switch v := raw.(type) {
		case []byte:
			return time.ParseDuration(string(v))
		case time.Duration:
			return v, nil
		}
		return 0, ErrUnsuportedConversion
	})
}

// NewPublicKeyConfig returns a new public key config utility wrapper. Raw
// values are base58 encoded.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return NewValueConfig(override, defaultValue, func(raw interface{}) (ed25519.PublicKey, error) {
		var encoded string
		switch v := raw.(type) {
		case []byte:
			encoded = string(v)
		case string:
			encoded = v
		case ed25519.PublicKey:
			if len(v) != ed25519.PublicKeySize {
				return nil, errors.Wrapf(ErrInvalidPublicKey, "got %d bytes", len(v))
			}
			return v, nil
		default:
			return nil, ErrUnsuportedConversion
		}

		decoded, err := base58.Decode(encoded)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
		}
		if len(decoded) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "got %d bytes", len(decoded))
		}
		return decoded, nil
	})
}
