package main

import (
	"os"

	"github.com/davidbz/promptbench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
