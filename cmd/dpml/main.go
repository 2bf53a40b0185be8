package main

import (
	"os"

	"github.com/vrtulka23/dpml/cmd/dpml/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
