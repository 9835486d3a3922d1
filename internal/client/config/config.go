package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the fsrelay client.
//
// Fields:
//   - ServerAddr: host:port of the fsrelay server.
//   - Timeout: limit for connecting and for each receive.
type Config struct {
	ServerAddr string
	Timeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = common.DefaultServerAddr
	c.Timeout = 10 * time.Second
}

// Load builds a Config from defaults, then the JSON file named by the
// config flag, then any flags set explicitly on fs. Later sources take
// precedence over earlier ones. fs must carry the flags added by
// RegisterFlags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyFlags(fs); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}
