package chart

import (
	"fmt"
	"math"
	"strconv"
)

// FormatPercent renders a percentage with exactly one decimal, without sign or unit
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

// FormatSignedPercent renders "+51.1%" / "-3.0%"; zero has no sign
func FormatSignedPercent(pct float64) string {
	s := FormatPercent(pct)
	if pct > 0 && s != "0.0" {
		s = "+" + s
	}
	if s == "-0.0" {
		s = "0.0"
	}
	return s + "%"
}

// FormatRatio renders a ratio with exactly one decimal
func FormatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatValue renders a measured value with one decimal
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatTime renders a completion time. Whole tick counts have no decimals.
func FormatTime(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return FormatValue(v)
}
