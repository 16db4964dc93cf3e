// marketctl is a terminal client for the TokenMart marketplace API. It
// drives the same dashboard controllers a graphical client would, with
// notifications printed to stdout and confirmations bridged to y/N
// prompts.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tokenmart/tokenmart.go/pkg/logger"
)

func main() {
	// Optional; flags and environment still apply without a .env file.
	_ = godotenv.Load()

	logData, err := logger.New().Console().Make()
	if err != nil {
		fmt.Fprintln(os.Stderr, "marketctl:", err)
		os.Exit(1)
	}

	if err := newRootCommand(logData.Logger).Execute(); err != nil {
		os.Exit(1)
	}
}
