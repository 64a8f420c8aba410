package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tempmon/internal/lockfile"
	"tempmon/internal/notify"
	"tempmon/internal/sensor"
)

// Outcome is the terminal state of a monitoring pass.
type Outcome int

const (
	Done    Outcome = iota // pass completed, lock released
	Skipped                // another instance holds the lock
	Stopped                // shutdown signal observed before completion
	Failed                 // no reading, or the lock could not be created
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case Stopped:
		return "stopped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNoReading reports that both read attempts came back empty.
var ErrNoReading = errors.New("no temperature reading after retry")

// stoppedText is the shutdown notice sent when a signal interrupts a pass.
const stoppedText = "Temp monitor stopped."

// Cycle is one monitoring pass: take the instance lock, read the
// temperature with a single retry, evaluate thresholds, release the lock.
type Cycle struct {
	source     sensor.Source
	evaluator  *Evaluator
	dispatcher *notify.Dispatcher
	lockPath   string
	retryDelay time.Duration
	log        *zap.Logger
}

// NewCycle creates a new Cycle.
func NewCycle(source sensor.Source, evaluator *Evaluator, dispatcher *notify.Dispatcher, lockPath string, retryDelay time.Duration, log *zap.Logger) *Cycle {
	return &Cycle{
		source:     source,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		lockPath:   lockPath,
		retryDelay: retryDelay,
		log:        log,
	}
}

// Run executes one pass. Cancellation of ctx is observed between steps; on
// shutdown the pass sends a one-shot stop notice and reports Stopped. The
// lock is released on every path that acquired it.
func (c *Cycle) Run(ctx context.Context) (Outcome, error) {
	lock, err := lockfile.Acquire(c.lockPath)
	if err != nil {
		if errors.Is(err, lockfile.ErrAlreadyRunning) {
			c.log.Error("skipping pass", zap.Error(err))
			return Skipped, err
		}
		return Failed, err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			c.log.Error("lock release failed", zap.Error(rerr))
		}
	}()
	c.log.Debug("lock acquired", zap.String("path", c.lockPath))

	if stopRequested(ctx) {
		return c.stop(), nil
	}

	r := c.source.Read(ctx)
	if !r.OK {
		c.log.Warn("temperature read failed, retrying",
			zap.String("reason", r.Error),
			zap.Duration("retry_delay", c.retryDelay),
		)
		if !c.wait(ctx) {
			return c.stop(), nil
		}
		r = c.source.Read(ctx)
	}

	if stopRequested(ctx) {
		return c.stop(), nil
	}

	c.evaluator.Process(r)
	if !r.OK {
		return Failed, ErrNoReading
	}
	return Done, nil
}

// wait blocks for the retry delay; false means ctx was canceled first.
func (c *Cycle) wait(ctx context.Context) bool {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// stop logs the shutdown and sends the stop notice. The dispatcher uses its
// own send contexts, so the notice goes out although ctx is already gone.
func (c *Cycle) stop() Outcome {
	c.log.Info("shutdown requested, stopping")
	c.dispatcher.Dispatch(notify.Event{Kind: notify.EventStopped, Text: stoppedText})
	return Stopped
}

func stopRequested(ctx context.Context) bool {
	return ctx.Err() != nil
}
