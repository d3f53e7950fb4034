package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/cache"
)

func TestNoop(t *testing.T) {
	var c cache.DocumentCache = cache.Noop{}

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))

	got, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedis_Unreachable(t *testing.T) {
	c := cache.NewRedis("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
}
