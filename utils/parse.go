package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberRegex finds the first number-like token in a string. It handles
// integers (1,079), decimals (119.00), and thousands separators.
var numberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseNumber pulls the first decimal number out of a free-form string such
// as "$45.00 / 3.5g" or "THC: 22.5%". Returns false when the string carries
// no parseable number.
func ParseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	found := numberRegex.FindString(s)
	if found == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(found, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// CoerceFloat converts a loosely-typed JSON value to a float64. Numbers pass
// through, numeric strings go through ParseNumber, everything else fails.
func CoerceFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		return ParseNumber(t)
	}
	return 0, false
}

// Stringify renders a loosely-typed JSON scalar as a string. Floats that are
// whole numbers print without a decimal point so numeric IDs round-trip
// cleanly through encoding/json.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
