package main

import (
	"os"

	"github.com/Konsultn-Engineering/bookworm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
