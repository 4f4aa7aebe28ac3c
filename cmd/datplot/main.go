// Command datplot gives a quick plot of whitespace-delimited numeric files
// such as those written by MD engines and analysis packages.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/datplot/internal/cli"
	"github.com/banshee-data/datplot/internal/config"
	"github.com/banshee-data/datplot/internal/display"
	"github.com/banshee-data/datplot/internal/display/window"
	"github.com/banshee-data/datplot/internal/fsutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := &cli.App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		FS:     fsutil.OSFileSystem{},
		Backend: func(cfg *config.Config) display.Backend {
			if cfg.Backend == "browser" {
				return &display.Browser{Addr: cfg.Listen, Out: os.Stdout}
			}
			return window.Window{}
		},
	}

	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
