package main

import (
	"os"

	"github.com/TroyNSmith/autostore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
