package main

import (
	"os"

	"github.com/skysift/skysift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
