package main

import (
	"fmt"
	"os"

	"github.com/askdeck/askdeck/internal/cli"
)

func main() {
	if err := cli.Cli(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
