package main

import (
	"context"
	"fmt"
	"os"

	"batteryrc/internal/control"
)

const version = "0.2.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return control.NewRootCmd(version).ExecuteContext(context.Background())
}
