package main

import (
	"os"

	"github.com/wellspring-ai/wellspring/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
