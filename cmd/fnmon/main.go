package main

import (
	"fmt"
	"os"

	"github.com/psantana5/fnmon/cmd/fnmon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
