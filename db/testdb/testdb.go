package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldops/fieldops-push-server/db"
)

const (
	Connect  = "mongodb://localhost:27017"
	Database = "fieldops_unittest"
)

// SkipIfUnavailable skips the test when no local mongo answers within a second.
func SkipIfUnavailable(t testing.TB) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(Connect).SetServerSelectionTimeout(time.Second))
	if err == nil {
		err = client.Ping(ctx, nil)
		_ = client.Disconnect(context.Background())
	}
	if err != nil {
		t.Skipf("mongo is not available: %v", err)
	}
}

func NewConfig() *Config {
	return &Config{Mongo: db.Mongo{Connect: Connect, Database: Database}}
}

type Config struct {
	Mongo db.Mongo
}

func (c *Config) Init(a *app.App) (err error) {
	return
}

func (c *Config) Name() (name string) {
	return "config"
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}
