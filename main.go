package main

import (
	"os"

	"github.com/epistemiq/epistemiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
