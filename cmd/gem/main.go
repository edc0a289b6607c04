package main

import (
	"os"

	"github.com/gemstrategy/backend/cmd/gem/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
