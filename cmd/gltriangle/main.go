package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/fosdem/gltriangle/lib/app"
	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [config file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if flag.NArg() > 0 {
		var err error
		cfg, err = config.Parse(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config invalid: %s\n", err)
			os.Exit(app.ExitCode(fmt.Errorf("%w: %w", app.ErrConfig, err)))
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(app.ExitCode(app.ErrConfig))
	}
	log.Setup(level)

	err = app.MakeWindowAndDraw(cfg)
	if err != nil {
		slog.Error(err.Error(), slog.String("module", "main"))
	}
	os.Exit(app.ExitCode(err))
}
