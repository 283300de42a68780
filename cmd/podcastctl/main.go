package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"podcastctl/internal/services"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cmd, cmdCtx := buildRootCommand()
	err := cmd.ExecuteContext(ctx)
	cancel()
	_ = cmdCtx.close()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", services.UserMessage(err))
		}
		os.Exit(1)
	}
}
