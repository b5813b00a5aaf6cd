package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/raphaelreyna/http-shell/cmd/http-shell/cmd"
	"github.com/raphaelreyna/http-shell/pkg/httpshell"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, httpshell.ErrInterrupted) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}
