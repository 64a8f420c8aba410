package sensor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Source is the interface for all temperature source implementations.
type Source interface {
	Read(ctx context.Context) Reading
}

// --- Command Source ---

// CommandSource runs a platform command and parses its output.
type CommandSource struct {
	Command string // full command line, e.g. "vcgencmd measure_temp"
	Timeout time.Duration
}

func (s *CommandSource) Read(ctx context.Context) Reading {
	parts := strings.Fields(s.Command)
	if len(parts) == 0 {
		return Reading{Error: "empty command"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, parts[0], parts[1:]...).Output()
	if err != nil {
		return Reading{Error: commandError(parts[0], err)}
	}

	v, err := ParseTemperature(string(out))
	if err != nil {
		return Reading{Error: fmt.Sprintf("%s: %v", parts[0], err)}
	}
	return Reading{Celsius: v, OK: true}
}

// commandError renders a run failure, keeping a stderr snippet when the
// command reported one.
func commandError(name string, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Sprintf("%s: %v: %s", name, err, truncate(strings.TrimSpace(string(exitErr.Stderr)), 120))
	}
	return fmt.Sprintf("%s: %v", name, err)
}

// NewSource creates the appropriate source for a configured source kind.
func NewSource(kind, command, sensorKey string, timeout time.Duration) Source {
	switch kind {
	case "gopsutil":
		return &GopsutilSource{Key: sensorKey}
	default:
		return &CommandSource{Command: command, Timeout: timeout}
	}
}
