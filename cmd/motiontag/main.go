package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/adiazny/motiontag-days/internal/pkg/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)

	code := cli.NewApp().Run(ctx, os.Args[1:])

	cancel()
	os.Exit(code)
}
