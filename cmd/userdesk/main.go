package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/userdesk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/userdesk/config.toml)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional, defaults to ~/.config/userdesk/prefs.toml)")
	probeSeconds := flag.Int("probe", 0, "connectivity probe interval in seconds (optional, defaults to 5s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
	}
	if probe := *probeSeconds; probe > 0 {
		opts.ProbeEvery = probe
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "userdesk: %v\n", err)
		return 1
	}
	return 0
}
