package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/rareships-go/internal/adapters/daemon"
	"github.com/andrescamacho/rareships-go/internal/adapters/metrics"
	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
	"github.com/andrescamacho/rareships-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config file (default: search default paths)")
	once := flag.Bool("once", false, "Sweep the fleet once and exit")
	flag.Parse()

	fmt.Println("rareships sweeper")
	fmt.Println("=================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// One sweeper per PID file
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file %s: %v", cfg.Daemon.PIDFile, err)
	}

	err = run(cfg, *once)
	if releaseErr := pf.Release(); releaseErr != nil {
		log.Printf("Warning: failed to release PID file: %v", releaseErr)
	}
	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, once bool) error {
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	rt, err := bootstrap.New(cfg, bootstrap.Options{EnableMetrics: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := rt.Context(context.Background())
	logger := logging.LoggerFromContext(ctx)
	sweeper := daemon.NewSweeper(rt.Mediator, cfg.Daemon.SweepInterval)

	relay := daemon.NewEventRelay(rt.Bus)
	relayCtx, stopRelay := context.WithCancel(ctx)
	relayDone := relay.Start(relayCtx)
	defer func() {
		stopRelay()
		<-relayDone
	}()

	if once {
		result, err := sweeper.SweepOnce(ctx)
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		stopRelay()
		<-relayDone
		fmt.Printf("✓ Settled %d ship(s), %d changed, %d failed, %d event(s)\n",
			result.Settled, result.Changed, len(result.Failures), relay.Total())
		return nil
	}

	var (
		metricsServer *daemon.MetricsServer
		metricsErr    <-chan error
	)
	if metrics.IsEnabled() {
		metricsServer = daemon.NewMetricsServer(cfg.Metrics, metrics.GetRegistry())
		if metricsErr, err = metricsServer.Start(); err != nil {
			return err
		}
		fmt.Printf("Metrics available at http://%s%s\n", metricsServer.Addr(), cfg.Metrics.Path)
	}

	stop := make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		select {
		case <-signals:
			fmt.Println("\nShutdown signal received, stopping sweeper...")
		case err, ok := <-metricsErr:
			if ok && err != nil {
				logger.Log(logging.LevelError, "Metrics server failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		close(stop)
	}()

	fmt.Printf("✓ Sweeping every %s, press Ctrl+C to stop\n", cfg.Daemon.SweepInterval)
	sweepErr := sweeper.RunUntil(ctx, stop, cfg.Daemon.ShutdownTimeout)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Log(logging.LevelWarn, "Metrics server did not shut down cleanly", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if sweepErr != nil {
		return sweepErr
	}
	stopRelay()
	<-relayDone
	fmt.Printf("Sweeper stopped after relaying %d event(s)\n", relay.Total())
	return nil
}
