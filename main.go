package main

import (
	"os"

	"github.com/museum-catalog/museum-backend/src/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
