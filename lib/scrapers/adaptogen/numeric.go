package adaptogen

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRegex = regexp.MustCompile(`[\d.]+`)

// NumericValue pulls the numeric reading out of a quantity cell like
// "27 g" or "113 kcal". Brazilian decimal commas count as periods,
// anything that fails to parse comes back as 0.
func NumericValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	raw = strings.ReplaceAll(raw, ",", ".")

	match := numberRegex.FindString(raw)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
