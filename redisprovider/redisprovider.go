package redisprovider

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"github.com/redis/go-redis/v9"
)

const CName = "fieldops.redisprovider"

type Config struct {
	Url string `yaml:"url"`
}

type configSource interface {
	GetRedis() Config
}

func New() RedisProvider {
	return new(redisProvider)
}

type RedisProvider interface {
	Redis() *redis.Client
	app.ComponentRunnable
}

type redisProvider struct {
	redis *redis.Client
}

func (r *redisProvider) Init(a *app.App) (err error) {
	conf := a.MustComponent("config").(configSource).GetRedis()
	opts, err := redis.ParseURL(conf.Url)
	if err != nil {
		return
	}
	r.redis = redis.NewClient(opts)
	return
}

func (r *redisProvider) Name() (name string) {
	return CName
}

func (r *redisProvider) Run(ctx context.Context) (err error) {
	return r.redis.Ping(ctx).Err()
}

func (r *redisProvider) Redis() *redis.Client {
	return r.redis
}

func (r *redisProvider) Close(ctx context.Context) (err error) {
	return r.redis.Close()
}
