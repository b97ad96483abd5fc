// Command contentctl inspects and validates the episode content tree.
package main

import (
	"fmt"
	"os"

	"inaudible/internal/config"
)

func main() {
	config.LoadEnv()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
