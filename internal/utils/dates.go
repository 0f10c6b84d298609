package utils

import (
	"math"
	"time"
)

// RentalDays returns the billed duration of [start, end) in whole days,
// rounding any partial day up. Callers validate end > start first.
func RentalDays(start, end time.Time) int32 {
	hours := end.Sub(start).Hours()
	days := int32(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// CeilDiv divides a by b rounding up. b must be positive.
func CeilDiv(a, b int32) int32 {
	return (a + b - 1) / b
}

// Overlaps is the canonical half-open interval intersection test: two ranges
// intersect iff each starts before the other ends.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
