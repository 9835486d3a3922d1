package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fsrelay/internal/flagx"
	"github.com/dmitrijs2005/fsrelay/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations accept
// "5m" style strings or integer nanoseconds. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	ListenAddr      *string         `json:"listen_addr"`
	WorkDir         *string         `json:"work_dir"`
	ReadTimeout     *timex.Duration `json:"read_timeout"`
	Backlog         *int            `json:"backlog"`
	LogLevel        *string         `json:"log_level"`
	MetricsEndpoint *string         `json:"metrics_endpoint"`
}

// parseJson overlays values from the file named by -c / -config.
// Without the flag it does nothing; an unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != nil {
		config.ListenAddr = *c.ListenAddr
	}
	if c.WorkDir != nil {
		config.WorkDir = *c.WorkDir
	}
	if c.ReadTimeout != nil {
		config.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.Backlog != nil {
		config.Backlog = *c.Backlog
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.MetricsEndpoint != nil {
		config.MetricsEndpoint = *c.MetricsEndpoint
	}
}
