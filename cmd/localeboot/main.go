package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"localeboot/internal/adapters/cli"
)

func main() {
	os.Exit(mainFn())
}

func mainFn() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand(ctx, cli.Options{})
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *cli.Error
		if errors.As(err, &cmdErr) && cmdErr.Inner != nil {
			slog.Error("❌ Command failed", "error", cmdErr.Inner)
		} else {
			_ = rootCmd.Usage()
		}
		return 1
	}

	return 0
}
