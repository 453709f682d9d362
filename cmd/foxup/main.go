package main

import (
	"fmt"
	"os"

	"github.com/adamancini/foxup/internal/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "foxup: error: %v\n", err)
		os.Exit(1)
	}
}
