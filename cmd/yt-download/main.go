package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/ytkit/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		platform.LogError("%v", err)
		os.Exit(1)
	}
}
