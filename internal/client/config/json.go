package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fsrelay/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// accepts strings like "3s" or integer nanoseconds. Absent keys leave the
// current value untouched.
type JsonConfig struct {
	ServerAddr *string         `json:"server_addr"`
	Timeout    *timex.Duration `json:"timeout"`
}

// LoadFile overlays c with the values found in the JSON file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if jc.ServerAddr != nil {
		c.ServerAddr = *jc.ServerAddr
	}
	if jc.Timeout != nil {
		c.Timeout = jc.Timeout.Duration
	}
	return nil
}
