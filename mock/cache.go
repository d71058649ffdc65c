package mock

import (
	"context"

	"github.com/dalil-app/dalil"
)

var _ dalil.Cache = (*Cache)(nil)

// Cache is a mock implementation of dalil.Cache.
type Cache struct {
	GetFn          func(ctx context.Context, key string, dest any) bool
	SetFn          func(ctx context.Context, key string, value any)
	DeletePrefixFn func(ctx context.Context, prefix string) int
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	return c.GetFn(ctx, key, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetFn(ctx, key, value)
}

func (c *Cache) DeletePrefix(ctx context.Context, prefix string) int {
	return c.DeletePrefixFn(ctx, prefix)
}
