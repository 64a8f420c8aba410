package sensor

import (
	"fmt"
	"regexp"
	"strconv"
)

// tempRe matches the firmware temperature report anywhere in the output.
// vcgencmd: temp=48.3'C
var tempRe = regexp.MustCompile(`temp=([-+]?[0-9]+(?:\.[0-9]+)?)'C`)

// ParseTemperature extracts the Celsius value from a temperature command's
// output. The expected shape is temp=<float>'C; anything else is an error.
// Implausible values pass through untouched, thresholds deal with them.
func ParseTemperature(output string) (float64, error) {
	m := tempRe.FindStringSubmatch(output)
	if m == nil {
		return 0, fmt.Errorf("no temp=<value>'C in output %q", truncate(output, 120))
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %v", m[1], err)
	}
	return v, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
