// Package config handles configuration for the fsrelay server, including
// defaults, JSON overlay, command-line flags and validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/dmitrijs2005/fsrelay/internal/logging"
	"github.com/dmitrijs2005/fsrelay/internal/netx"
)

// Config holds runtime settings for the fsrelay server.
//
// Fields:
//   - ListenAddr: loopback host:port to bind.
//   - WorkDir: initial shared working directory; empty means the process cwd.
//   - ReadTimeout: idle limit for a single receive on a client connection.
//   - Backlog: listen(2) backlog.
//   - LogLevel: debug, info, warn or error.
//   - MetricsEndpoint: OTLP/HTTP collector (host:port); empty disables export.
type Config struct {
	ListenAddr      string
	WorkDir         string
	ReadTimeout     time.Duration
	Backlog         int
	LogLevel        string
	MetricsEndpoint string
}

// LoadDefaults populates Config with the reference settings.
func (c *Config) LoadDefaults() {
	c.ListenAddr = common.DefaultServerAddr
	c.WorkDir = ""
	c.ReadTimeout = 5 * time.Minute
	c.Backlog = 3
	c.LogLevel = "info"
	c.MetricsEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !netx.IsLoopback(c.ListenAddr) {
		errs = append(errs, fmt.Errorf("listen address %q is not a loopback endpoint", c.ListenAddr))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout))
	}
	if c.Backlog <= 0 {
		errs = append(errs, fmt.Errorf("backlog must be positive, got %d", c.Backlog))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
