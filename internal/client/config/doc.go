// Package config loads runtime configuration for the fsrelay client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. Command-line flags set explicitly, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_addr": "127.0.0.1:50052",
//	  "timeout": "10s"
//	}
package config
