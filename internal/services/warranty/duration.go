package warranty

import (
	"strconv"
	"strings"
)

// DefaultYears is the warranty duration applied when none is given.
const DefaultYears = 2

const maxYears = 10

// ParseDurationYears extracts the year count from the legacy free-text form
// ("2 years"). New API paths send a structured integer instead; this exists
// for bulk rows that still carry the text. Anything whose leading token is
// not a positive integer is rejected rather than silently defaulted.
func ParseDurationYears(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultYears, nil
	}
	fields := strings.Fields(s)
	years, err := strconv.Atoi(fields[0])
	if err != nil || years <= 0 || years > maxYears {
		return 0, ErrInvalidDuration
	}
	return years, nil
}
