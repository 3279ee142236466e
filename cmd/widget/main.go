// Package main provides the entry point for the spurchat terminal widget.
package main

import (
	"fmt"
	"os"

	"github.com/iyunix/go-spurchat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
