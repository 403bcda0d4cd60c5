// Package progress tracks local lesson completion and the dwell timer
// that drives auto-completion.
package progress

import (
	"strconv"
	"strings"
	"time"
)

// ParseDwell interprets the wire time_validator encoding as
// minutes.seconds: the integer part is minutes, and up to two digits
// after the decimal point are seconds ("3.45" is 3m45s). The seconds
// component is clamped to [0,59]; "3.99" therefore means 3m59s, not a
// malformed minute. Absent, zero, or unparseable values yield 0.
//
// The value must be the raw wire text (json.Number), not a float:
// a float64 round-trip turns "2.30" into "2.3" and loses a digit.
func ParseDwell(spec string) time.Duration {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0
	}

	minPart, secPart, _ := strings.Cut(spec, ".")

	minutes, err := strconv.Atoi(minPart)
	if err != nil || minutes < 0 {
		return 0
	}

	seconds := 0
	if secPart != "" {
		if len(secPart) > 2 {
			secPart = secPart[:2]
		}
		seconds, err = strconv.Atoi(secPart)
		if err != nil || seconds < 0 {
			seconds = 0
		}
		if seconds > 59 {
			seconds = 59
		}
	}

	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}
