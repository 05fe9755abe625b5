package testredisprovider

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/anyproto/any-sync/app"
	"github.com/redis/go-redis/v9"

	"github.com/fieldops/fieldops-push-server/redisprovider"
)

func NewTestRedisProvider() redisprovider.RedisProvider {
	return new(testRedisProvider)
}

// testRedisProvider serves an in-memory redis for the lifetime of the app.
type testRedisProvider struct {
	server *miniredis.Miniredis
	redis  *redis.Client
}

func (t *testRedisProvider) Init(a *app.App) (err error) {
	if t.server, err = miniredis.Run(); err != nil {
		return
	}
	t.redis = redis.NewClient(&redis.Options{Addr: t.server.Addr()})
	return
}

func (t *testRedisProvider) Name() (name string) {
	return redisprovider.CName
}

func (t *testRedisProvider) Run(ctx context.Context) (err error) {
	return nil
}

func (t *testRedisProvider) Redis() *redis.Client {
	return t.redis
}

func (t *testRedisProvider) Close(ctx context.Context) (err error) {
	_ = t.redis.Close()
	t.server.Close()
	return
}
