package monitor

import (
	"fmt"

	"tempmon/internal/config"
	"tempmon/internal/sensor"
)

// Step is one entry of the threshold table.
type Step struct {
	Limit   float64
	Message string
}

// Table is an ordered list of threshold steps. Order is significant: steps
// are checked first to last and the first exceeded limit wins, so tables
// list limits from most to least severe.
type Table []Step

// NewTable builds a table from configured thresholds, keeping their order.
func NewTable(thresholds []config.Threshold) Table {
	t := make(Table, 0, len(thresholds))
	for _, th := range thresholds {
		t = append(t, Step{Limit: th.Limit, Message: th.Message})
	}
	return t
}

// Evaluate returns the first step whose limit the reading strictly exceeds.
// A reading exactly at a limit does not trip it.
func (t Table) Evaluate(celsius float64) (Breach, bool) {
	for _, step := range t {
		if celsius > step.Limit {
			return Breach{Step: step, Celsius: celsius}, true
		}
	}
	return Breach{}, false
}

// Breach is a reading that exceeded a threshold step.
type Breach struct {
	Step    Step
	Celsius float64
}

// Message renders the notification text for the breach.
func (b Breach) Message() string {
	return fmt.Sprintf("*%s*\nCurrent Temp: *%sc*!", b.Step.Message, sensor.FormatCelsius(b.Celsius))
}
