package monitor

import (
	"go.uber.org/zap"

	"tempmon/internal/notify"
	"tempmon/internal/sensor"
)

// Evaluator checks readings against the threshold table and triggers
// notifications.
type Evaluator struct {
	table      Table
	dispatcher *notify.Dispatcher
	log        *zap.Logger
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(table Table, dispatcher *notify.Dispatcher, log *zap.Logger) *Evaluator {
	return &Evaluator{table: table, dispatcher: dispatcher, log: log}
}

// Process handles one reading. An absent reading is logged and skipped with
// no notification attempt. A breach sends exactly one notification, for the
// first exceeded step; otherwise the temperature is only logged.
func (e *Evaluator) Process(r sensor.Reading) {
	if !r.OK {
		e.log.Error("temperature unavailable", zap.String("reason", r.Error))
		return
	}

	breach, ok := e.table.Evaluate(r.Celsius)
	if !ok {
		e.log.Info("temperature optimal", zap.Float64("celsius", r.Celsius))
		return
	}

	e.log.Warn("threshold exceeded",
		zap.Float64("celsius", r.Celsius),
		zap.Float64("limit", breach.Step.Limit),
	)
	e.dispatcher.Dispatch(notify.Event{
		Kind:    notify.EventThreshold,
		Text:    breach.Message(),
		Celsius: r.Celsius,
	})
}
