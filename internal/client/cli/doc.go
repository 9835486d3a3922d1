// Package cli provides the fsrelay command-line client.
//
// The root command opens an interactive session against one server
// connection and accepts the server's own commands:
//
//	ls [path]
//	cd <path>
//	cp <src> <dst> <upload|download>
//
// An upload sends the local file src to the remote path dst. A download
// writes the remote src to the local path dst; when src turns out to be a
// directory its contents are mirrored into dst.
//
// One-shot subcommands (ls, get, put) run a single operation and exit; get
// places the remote path inside a local directory, keeping its base name.
// See NewRootCmd and Run.
package cli
