package main

import (
	"os"

	"github.com/vidbrief/vidbrief/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
