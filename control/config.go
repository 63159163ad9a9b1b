// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Typed multiplexer configuration with YAML loading and validation.

package control

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultQueueCapacity bounds the event queue when no override is
// given. Producers block once this many events are pending.
const DefaultQueueCapacity = 1024

// Config carries the tunables of a multiplexer instance.
type Config struct {
	// QueueCapacity bounds the event queue. Zero selects the default.
	QueueCapacity int `yaml:"queue_capacity"`

	// DropOnFull makes producers drop instead of block when the queue
	// is at capacity.
	DropOnFull bool `yaml:"drop_on_full"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{QueueCapacity: DefaultQueueCapacity}
}

// Validate normalizes zero values and rejects nonsense.
func (c *Config) Validate() error {
	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity)
	}
	return nil
}

// LoadConfig reads a YAML config file, applying defaults for absent
// keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
