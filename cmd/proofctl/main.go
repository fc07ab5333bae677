package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/altuslabsxyz/proof-bridge/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
