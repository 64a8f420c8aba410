package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tempmon/internal/config"
	"tempmon/internal/logger"
	"tempmon/internal/monitor"
	"tempmon/internal/notify"
	"tempmon/internal/sensor"
)

// Exit codes. Lock contention gets its own code so cron wrappers can tell
// an overlapping run from a real failure.
const (
	exitOK             = 0
	exitFailure        = 1
	exitAlreadyRunning = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config_file", "", "path to the INI config file (required)")
	deviceName := flag.String("device_name", "device1", "device name stamped on log entries and notifications")
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: --config_file")
		flag.Usage()
		return exitFailure
	}

	// --- 1. Load Config ---
	cfg, err := config.Load(*configFile)
	if err != nil {
		consoleOnly().Error("failed to load config", zap.Error(err))
		return exitFailure
	}

	// --- 2. Setup Logger ---
	log, err := logger.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		consoleOnly().Error("failed to set up logging", zap.Error(err))
		return exitFailure
	}
	defer log.Sync()

	log = log.With(
		zap.String("device", *deviceName),
		zap.String("run_id", uuid.NewString()),
	)
	log.Info("starting temperature pass", zap.String("source", cfg.Monitor.Source))

	// --- 3. Signal Handling ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- 4. Notifiers ---
	notifiers := notify.BuildNotifiers(cfg)
	for _, n := range notifiers {
		if err := n.Validate(); err != nil {
			log.Error("notifier misconfigured", zap.String("type", n.Type()), zap.Error(err))
			return exitFailure
		}
	}
	dispatcher := notify.NewDispatcher(notifiers, cfg.Monitor.HTTPTimeout, *deviceName, log)

	// --- 5. Source, Evaluator, Cycle ---
	source := sensor.NewSource(cfg.Monitor.Source, cfg.Monitor.Command, cfg.Monitor.SensorKey, cfg.Monitor.CommandTimeout)
	evaluator := monitor.NewEvaluator(monitor.NewTable(cfg.Thresholds), dispatcher, log)
	cycle := monitor.NewCycle(source, evaluator, dispatcher, cfg.Monitor.LockFile, cfg.Monitor.RetryDelay, log)

	// --- 6. Run One Pass ---
	outcome, err := cycle.Run(ctx)
	switch outcome {
	case monitor.Done:
		log.Info("pass complete")
		return exitOK
	case monitor.Stopped:
		log.Info("stopped on signal")
		return exitOK
	case monitor.Skipped:
		return exitAlreadyRunning
	default:
		log.Error("pass failed", zap.Error(err))
		return exitFailure
	}
}

// consoleOnly is the fallback for errors that happen before the configured
// logger exists.
func consoleOnly() *zap.Logger {
	log, _ := logger.New("", "info")
	return log
}
