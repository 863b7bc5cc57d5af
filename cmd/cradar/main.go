package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sqve/cradar/internal/app"
)

func main() {
	rootCmd := app.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if strings.Contains(err.Error(), "unknown command") {
			fmt.Fprintf(os.Stderr, "\nRun 'cradar --help' for usage information\n")
		}

		os.Exit(1)
	}
}
