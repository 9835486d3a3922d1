package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-a", "127.0.0.1:50052", "-x", "1"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "127.0.0.1:50052"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-t=300", "-x", "1"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t=300"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-w"},
			allowedFlags: []string{"-w"},
			want:         []string{"-w"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-w", "-l", "debug"},
			allowedFlags: []string{"-w", "-l"},
			want:         []string{"-w", "-l", "debug"},
		},
		{
			name:         "equals value may start with a dash",
			args:         []string{"-config=--odd.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--odd.json"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-b", "3", "-b", "5"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "3", "-b", "5"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/fsrelay.json", ConfigPath([]string{"-c", "/etc/fsrelay.json"}))
	assert.Equal(t, "/etc/long.json", ConfigPath([]string{"-a", "x", "-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/eq.json", ConfigPath([]string{"--config=/etc/eq.json"}))
	assert.Equal(t, "/two.json", ConfigPath([]string{"-c", "/one.json", "-config", "/two.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
}
