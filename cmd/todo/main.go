// Command todo manages the task list from a terminal. It reads and writes
// the same files as the desktop app.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MihkelHunter/tasklist/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
