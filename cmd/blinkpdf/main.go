// Package main provides the BlinkPDF service entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/blinkpdf/blinkpdf/cmd/blinkpdf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
