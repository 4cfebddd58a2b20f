package memory

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/nezha-game/staking-client/pkg/config"
)

func TestConfig(t *testing.T) {
	ctx := context.Background()
	c := NewConfig([]byte("devnet"))

	v, err := c.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []byte("devnet"), v)

	c.Set(nil)
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	unavailable := errors.New("unavailable")
	c.Set("mainnet-beta")
	c.Fail(unavailable)
	_, err = c.Get(ctx)
	assert.Equal(t, unavailable, err)

	c.Fail(nil)
	v, err = c.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "mainnet-beta", v)

	c.Shutdown()
	c.Fail(unavailable)
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)

	assert.Equal(t, 5, c.Reads())
}
