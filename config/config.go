package config

import (
	"os"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"gopkg.in/yaml.v3"

	"github.com/fieldops/fieldops-push-server/db"
	"github.com/fieldops/fieldops-push-server/dispatcher"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/gateway/provider/expo"
	"github.com/fieldops/fieldops-push-server/gateway/provider/fcm"
	"github.com/fieldops/fieldops-push-server/monitor"
	"github.com/fieldops/fieldops-push-server/push"
	"github.com/fieldops/fieldops-push-server/redisprovider"
)

const CName = "config"

// NewFromFile reads a yaml config. ${VAR} references are expanded from the environment.
func NewFromFile(path string) (c *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (c *Config, err error) {
	c = &Config{}
	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Log        logger.Config        `yaml:"log"`
	Metric     metric.Config        `yaml:"metric"`
	Mongo      db.Mongo             `yaml:"mongo"`
	Redis      redisprovider.Config `yaml:"redis"`
	API        push.Config          `yaml:"api"`
	Gateway    gateway.Config       `yaml:"gateway"`
	Expo       expo.Config          `yaml:"expo"`
	FCM        fcm.Config           `yaml:"fcm"`
	Monitor    monitor.Config       `yaml:"monitor"`
	Dispatcher dispatcher.Config    `yaml:"dispatcher"`
}

func (c *Config) Init(a *app.App) (err error) {
	return nil
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}

func (c *Config) GetRedis() redisprovider.Config {
	return c.Redis
}

func (c *Config) GetAPI() push.Config {
	return c.API
}

func (c *Config) GetGateway() gateway.Config {
	return c.Gateway
}

func (c *Config) GetExpo() expo.Config {
	return c.Expo
}

func (c *Config) GetFCM() fcm.Config {
	return c.FCM
}

func (c *Config) GetMonitor() monitor.Config {
	return c.Monitor
}

func (c *Config) GetDispatcher() dispatcher.Config {
	return c.Dispatcher
}
