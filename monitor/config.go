package monitor

import "time"

type configSource interface {
	GetMonitor() Config
}

type Config struct {
	Interval time.Duration `yaml:"interval"`
	// Lookback sets the initial checkpoint of every kind to now - lookback.
	Lookback time.Duration `yaml:"lookback"`
	Disabled bool          `yaml:"disabled"`
}
