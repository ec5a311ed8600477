package main

import (
	"os"

	"github.com/ezgiver/JobFinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
