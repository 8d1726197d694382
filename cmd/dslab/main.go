// Package main is the entry point for the dslab CLI binary.
package main

import (
	"os"

	cli "dslab/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
