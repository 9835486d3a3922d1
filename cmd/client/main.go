package main

import (
	"os"

	"github.com/dmitrijs2005/fsrelay/internal/client/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
