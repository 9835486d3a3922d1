package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   loopback address and port to bind (e.g., "127.0.0.1:50052")
//	-w string   initial working directory
//	-t int      receive timeout, seconds
//	-b int      listen backlog
//	-l string   log level
//	-m string   OTLP/HTTP metrics endpoint
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and foreign
// flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-t", "-b", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "loopback address and port to run server")
	fs.StringVar(&config.WorkDir, "w", config.WorkDir, "initial working directory")
	readTimeout := fs.Int("t", int(config.ReadTimeout.Seconds()), "receive timeout (in seconds)")
	fs.IntVar(&config.Backlog, "b", config.Backlog, "listen backlog")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&config.MetricsEndpoint, "m", config.MetricsEndpoint, "OTLP/HTTP metrics endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole seconds; leave finer JSON durations alone unless it was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ReadTimeout = time.Duration(*readTimeout) * time.Second
		}
	})
}
