package scheduler

import "time"

type Config struct {
	SweepInterval time.Duration
	BatchSize     int
}

func (c Config) withDefaults() Config {
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	return c
}

func ProvideConfig() Config {
	return Config{}
}
