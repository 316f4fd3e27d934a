package main

import (
	"os"

	"github.com/gmeeker/conan-darwin-toolchain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
