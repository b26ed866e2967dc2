package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/spatialgo/internal/job"
	"github.com/hupe1980/spatialgo/internal/notify"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile   = flag.String("config", "job.yaml", "Path to job configuration file")
	validateOnly = flag.Bool("validate", false, "Validate the job file and exit")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("spatialgo version: %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spatialgo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := job.LoadConfig(*configFile)
	if err != nil {
		return err
	}
	if *validateOnly {
		fmt.Printf("%s: ok (%s)\n", *configFile, cfg.Operation)
		return nil
	}

	logger := cfg.Log.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := job.OpenStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	var pub *notify.Publisher
	if cfg.Notify != nil {
		if pub, err = notify.Dial(*cfg.Notify); err != nil {
			return err
		}
		defer pub.Close()
	}

	runner, err := job.NewRunner(cfg, store, job.WithLogger(logger))
	if err != nil {
		return err
	}

	res, runErr := runner.Run(ctx)

	if pub != nil {
		if err := pub.Publish(context.WithoutCancel(ctx), job.Summarize(cfg, res, runErr)); err != nil {
			logger.Error("publishing job summary", "error", err)
		}
	}

	return runErr
}
