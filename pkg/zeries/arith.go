package zeries

import "math"

// Wide-range arithmetic near the int64 extremes overflows easily.  These
// helpers are the only code allowed to reason about the full uint64 domain;
// callers must guarantee the true result is representable before invoking
// UaddMag or UsubMag.

// Udiff returns high-low as an unsigned magnitude.  Precondition: high >= low.
func Udiff(high, low int64) uint64 {
	if low >= 0 || high < 0 {
		return uint64(high - low)
	}
	return uint64(high) + uint64(-low)
}

// UaddMag returns base+delta.  The delta is consumed in chunks no larger
// than MaxInt64 so no intermediate value leaves the signed range.
func UaddMag(base int64, delta uint64) int64 {
	for delta > math.MaxInt64 {
		base += math.MaxInt64
		delta -= math.MaxInt64
	}
	return base + int64(delta)
}

// UsubMag returns base-delta, symmetric to UaddMag.
func UsubMag(base int64, delta uint64) int64 {
	for delta > math.MaxInt64 {
		base -= math.MaxInt64
		delta -= math.MaxInt64
	}
	return base - int64(delta)
}
