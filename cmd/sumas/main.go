package main

import (
	"os"

	"github.com/pugivik/sumas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
