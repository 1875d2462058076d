package main

import (
	"os"

	"github.com/leefowlercu/text-to-cypher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
