// Package sensor reads the device temperature from a platform command or
// from host sensors and parses it into a Celsius value.
package sensor

import (
	"strconv"
	"strings"
)

// Reading is the outcome of a single temperature read attempt.
type Reading struct {
	Celsius float64
	OK      bool
	Error   string
}

// FormatCelsius renders a temperature with minimal digits but always at
// least one decimal place: 82 becomes "82.0", 65.53 stays "65.53".
func FormatCelsius(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
