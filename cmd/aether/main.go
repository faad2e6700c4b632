package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aethersim/aether/internal/core/config"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/injector"
	"github.com/aethersim/aether/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "aether.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	eng := injector.InitializeEngine(cfg)
	logger := eng.Services().Log

	for _, name := range cfg.Assets.Prefetch {
		eng.Services().Assets.Load(name)
	}
	for _, z := range cfg.Zones.Zones {
		eng.RegisterZone(z.ID, z.Asset)
	}
	if err := eng.ChangeZone(cfg.Zones.Initial); err != nil {
		return err
	}

	var debug *server.DebugServer
	if cfg.Debug.Enabled {
		debug = server.NewDebugServer(logger, cfg.Debug.BindAddress)
		debug.Start()
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("simulation running",
		log.Duration("tickRate", cfg.Simulation.TickRate),
		log.Int("initialZone", cfg.Zones.Initial))

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-stopCh:
			logger.Info("shutting down")
			if debug != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := debug.Stop(ctx); err != nil {
					logger.Warn("debug server shutdown", log.Error(err))
				}
			}
			return nil
		case now := <-ticker.C:
			eng.Tick(now.Sub(last).Seconds())
			last = now
			if debug != nil {
				debug.Publish(eng.Snapshot())
			}
		}
	}
}
