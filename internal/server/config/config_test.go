package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50052", c.ListenAddr)
	assert.Equal(t, "", c.WorkDir)
	assert.Equal(t, 5*time.Minute, c.ReadTimeout)
	assert.Equal(t, 3, c.Backlog)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "", c.MetricsEndpoint)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"fsrelay-server"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, "127.0.0.1:50052", c.ListenAddr)
	assert.Equal(t, 5*time.Minute, c.ReadTimeout)
	assert.Equal(t, 3, c.Backlog)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "ipv6 loopback", mutate: func(c *Config) { c.ListenAddr = "[::1]:50052" }},
		{name: "localhost", mutate: func(c *Config) { c.ListenAddr = "localhost:0" }},
		{name: "wildcard address", mutate: func(c *Config) { c.ListenAddr = "0.0.0.0:50052" }, wantErr: "not a loopback"},
		{name: "empty host", mutate: func(c *Config) { c.ListenAddr = ":50052" }, wantErr: "not a loopback"},
		{name: "zero timeout", mutate: func(c *Config) { c.ReadTimeout = 0 }, wantErr: "read timeout"},
		{name: "zero backlog", mutate: func(c *Config) { c.Backlog = 0 }, wantErr: "backlog"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
