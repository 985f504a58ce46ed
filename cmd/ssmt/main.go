package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "github.com/BrandonKowalski/certifiable"

	"ssmt/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps error markers to distinct exit statuses for scripting.
func exitCode(err error) int {
	switch services.Kind(err) {
	case "not_found":
		return 3
	case "unsupported":
		return 4
	case "network", "timeout":
		return 5
	default:
		return 1
	}
}
