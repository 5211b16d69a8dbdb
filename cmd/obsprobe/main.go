//go:build !ios && !android && (amd64 || arm64)

// Command obsprobe inspects a libobs installation and drives a short
// capture session through obsgo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/obinnaokechukwu/obsgo/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
