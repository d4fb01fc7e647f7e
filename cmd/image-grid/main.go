// Command image-grid splits images into multi-post grid tiles.
package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-grid/internal/cli"
	"github.com/ironsheep/image-grid/internal/errors"
)

// Version information - set by ldflags during build
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	c.SetVersion(Version, Commit, Date)

	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		cli.PrintError(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}
