package common

import "time"

// Round truncates a duration to the given unit, e.g. for log output.
func Round(d, r time.Duration) time.Duration {
	if r <= 0 {
		return d
	}
	neg := d < 0
	if neg {
		d = -d
	}
	if m := d % r; m+m < r {
		d = d - m
	} else {
		d = d - m + r
	}
	if neg {
		return -d
	}
	return d
}
