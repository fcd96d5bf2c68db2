package leave

import "time"

// Days computes the leave-day cost of a request: 0.5 for a half-day,
// otherwise the inclusive whole-day span. Callers validate that a
// half-day request covers a single day before computing.
func Days(start, end time.Time, half *Half) float64 {
	if half != nil {
		return 0.5
	}
	return end.Sub(start).Hours()/24 + 1
}
