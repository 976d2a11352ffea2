package main

import (
	"os"

	"github.com/abhisek/delectable/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
