package config

import (
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/common"
	"github.com/spf13/pflag"
)

const (
	flagAddr    = "addr"
	flagTimeout = "timeout"
	flagConfig  = "config"
)

// RegisterFlags adds the client flags to fs:
//
//	-a, --addr string       server address (host:port)
//	-t, --timeout duration  connect and receive timeout
//	-c, --config string     JSON config file
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagAddr, "a", common.DefaultServerAddr, "server address (host:port)")
	fs.DurationP(flagTimeout, "t", 10*time.Second, "connect and receive timeout")
	fs.StringP(flagConfig, "c", "", "JSON config file")
}

// applyFlags copies the flags the user actually set, so that unset flags
// do not override values from the config file.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	if fs.Changed(flagAddr) {
		v, err := fs.GetString(flagAddr)
		if err != nil {
			return err
		}
		c.ServerAddr = v
	}
	if fs.Changed(flagTimeout) {
		v, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return err
		}
		c.Timeout = v
	}
	return nil
}
