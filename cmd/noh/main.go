package main

import (
	"os"

	"github.com/nohlang/go-noh/cmd/noh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
