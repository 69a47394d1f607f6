package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"brandsort/internal/services"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "brandsort: %v\n", err)
	}
	os.Exit(services.ExitCode(err))
}
