// Package memory provides a config.Config held in process memory, for tests.
package memory

import (
	"context"
	"sync"

	"github.com/nezha-game/staking-client/pkg/config"
)

// Config returns whatever value or error was last stored in it.
type Config struct {
	mu       sync.Mutex
	value    interface{}
	err      error
	shutdown bool
	reads    int
}

// NewConfig returns a config holding value. A nil value reads as unset.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reads++
	if c.shutdown {
		return nil, config.ErrShutdown
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.value == nil {
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

func (c *Config) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()
}

// Set replaces the stored value. Set(nil) makes the config unset.
func (c *Config) Set(value interface{}) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

// Fail makes every Get return err until Fail(nil) is called.
func (c *Config) Fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Reads is the number of Get calls observed.
func (c *Config) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
