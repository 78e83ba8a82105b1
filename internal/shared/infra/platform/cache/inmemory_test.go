package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "evento:id:1", item{ID: 1, Title: "Examen"}, 0))

	var got item
	hit, err := c.Get(ctx, "evento:id:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Examen", got.Title)

	require.NoError(t, c.Delete(ctx, "evento:id:1"))
	hit, err = c.Get(ctx, "evento:id:1", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_Expired(t *testing.T) {
	c := NewInMemoryCache(-time.Second, 0) // TTL por defecto ya vencido
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", item{ID: 2}, 0))

	var got item
	hit, err := c.Get(ctx, "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_Stop(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 10*time.Millisecond)
	c.Stop()
	c.Stop() // idempotente
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("redis down")
}

func (failingCache) Set(context.Context, string, interface{}, int) error {
	return errors.New("redis down")
}

func (failingCache) Delete(context.Context, string) error {
	return errors.New("redis down")
}

func TestBestEffort_SwallowsErrors(t *testing.T) {
	c := failingCache{}
	BestEffortSet(context.Background(), c, "k", item{}, 10, zap.NewNop())
	BestEffortDelete(context.Background(), c, "k", zap.NewNop())
	BestEffortSet(context.Background(), nil, "k", item{}, 10, zap.NewNop())
}
