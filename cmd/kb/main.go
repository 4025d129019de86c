package main

import (
	"fmt"
	"os"

	"kanban-board/internal/cli"
)

func main() {
	// Configuration, storage and logging are wired by the root command
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
