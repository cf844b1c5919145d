package output

import (
	"math"
	"strconv"
	"strings"
)

// NotApplicable is the human rendering of a NaN metric value.
const NotApplicable = "n/a"

// RoundFloat rounds a float to max 6 decimal places
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, 6)
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat formats a float with no trailing zeros
func FormatFloat(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', 6, 64)
	str = strings.TrimRight(str, "0")
	return strings.TrimRight(str, ".")
}

// IsNumber reports whether f is neither NaN nor infinite.
func IsNumber(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FormatMetric formats a metric value, rendering NaN as NotApplicable.
func FormatMetric(f float64) string {
	switch {
	case math.IsNaN(f):
		return NotApplicable
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return FormatFloat(f)
}

// MetricValue returns the rounded value of f for encoding, or nil when f is
// not a number.
func MetricValue(f float64) *float64 {
	if !IsNumber(f) {
		return nil
	}
	v := RoundFloat(f)
	return &v
}
