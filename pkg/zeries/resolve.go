package zeries

import "math"

// resolvedRange fully determines one enumeration: start is the first emitted
// value, stop the last (inclusive), and step carries the walk direction.
// userStep/userBase are the effective parameters surfaced through the hidden
// columns.  empty means the constraint conjunction is infeasible and the
// cursor produces no rows (this is never an error).
type resolvedRange struct {
	start, stop int64
	step        int64
	userStep    int64
	userBase    int64
	empty       bool
}

func emptyRange() (resolvedRange, error) {
	return resolvedRange{empty: true}, nil
}

// int64 representability window for float64 comparison values.  2^63 itself
// is exactly representable as a float64 but not as an int64, hence the
// half-open upper edge.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// floatToInt64 converts d to int64 when d is losslessly integral.
func floatToInt64(d float64) (int64, bool) {
	if d >= minInt64Float && d < maxInt64Float && d == math.Trunc(d) {
		return int64(d), true
	}
	return 0, false
}

// numericValue splits a Filter argument into its integer or floating
// representation.  Everything else (text, blob, nil) is non-numeric.
func numericValue(v interface{}) (ival int64, dval float64, isInt, isFloat bool) {
	switch x := v.(type) {
	case int64:
		return x, 0, true, false
	case int:
		return int64(x), 0, true, false
	case float64:
		return 0, x, false, true
	}
	return 0, 0, false, false
}

// upperBound converts one upper-bound comparison value into an inclusive
// integer bound, rounding toward the feasible region.  strict distinguishes
// < from <=.  Returns empty=true when no integer satisfies the constraint,
// and ok=false when the value is non-numeric.
func upperBound(v interface{}, strict bool) (bound int64, empty, ok bool) {
	ival, dval, isInt, isFloat := numericValue(v)
	switch {
	case isInt:
		// integral bound below.
	case isFloat:
		if math.IsNaN(dval) {
			return 0, true, true
		}
		if dval >= maxInt64Float {
			return math.MaxInt64, false, true
		}
		if dval < minInt64Float {
			return 0, true, true
		}
		if dval != math.Trunc(dval) {
			// A fractional bound is the same constraint strict or not:
			// the largest feasible integer is floor(bound).
			return int64(math.Floor(dval)), false, true
		}
		ival = int64(dval)
	default:
		return 0, false, false
	}
	if strict {
		if ival == math.MinInt64 {
			return 0, true, true
		}
		ival--
	}
	return ival, false, true
}

// lowerBound is the mirror image of upperBound for > and >=.
func lowerBound(v interface{}, strict bool) (bound int64, empty, ok bool) {
	ival, dval, isInt, isFloat := numericValue(v)
	switch {
	case isInt:
	case isFloat:
		if math.IsNaN(dval) {
			return 0, true, true
		}
		if dval < minInt64Float {
			return math.MinInt64, false, true
		}
		if dval >= maxInt64Float {
			return 0, true, true
		}
		if dval != math.Trunc(dval) {
			return int64(math.Ceil(dval)), false, true
		}
		ival = int64(dval)
	default:
		return 0, false, false
	}
	if strict {
		if ival == math.MaxInt64 {
			return 0, true, true
		}
		ival++
	}
	return ival, false, true
}

// resolveRange turns the planner's token string plus the bound argument
// values into the exact (start, stop, signed step) triple, or an empty
// signal, or a fatal configuration error.  defStep/defBase are the table's
// declaration-time defaults.
func resolveRange(defStep, defBase int64, idxNum int, idxStr string, args []interface{}) (resolvedRange, error) {
	var rr resolvedRange

	if len(args) != len(idxStr) {
		return rr, Errorf(ZDB_INTERNAL, "zeries: %d filter args for %d plan tokens", len(args), len(idxStr))
	}

	exact := [numExactSlots]int64{
		slotOffset: 0,
		slotLimit:  -1,
		slotStep:   defStep,
		slotBase:   defBase,
	}
	var seen uint
	lower := int64(math.MinInt64)
	upper := int64(math.MaxInt64)

	for argIx := 0; argIx < len(args); argIx++ {
		val := args[argIx]
		slot := int(idxStr[argIx] - 'a')

		switch slot {
		case slotOffset, slotLimit, slotStep, slotBase:
			ival, dval, isInt, isFloat := numericValue(val)
			if !isInt {
				got, lossless := int64(0), false
				if isFloat {
					got, lossless = floatToInt64(dval)
				}
				if !lossless {
					return rr, Errorf(ZDB_MISMATCH, "%s parameter has wrong type", exactNames[slot])
				}
				ival = got
			}
			flag := uint(1) << uint(slot)
			if seen&flag != 0 {
				if ival != exact[slot] {
					return emptyRange()
				}
			} else {
				exact[slot] = ival
				seen |= flag
			}

		case slotEQ:
			ival, dval, isInt, isFloat := numericValue(val)
			if !isInt {
				got, lossless := int64(0), false
				if isFloat {
					got, lossless = floatToInt64(dval)
				}
				if !lossless {
					return emptyRange()
				}
				ival = got
			}
			if ival < lower || ival > upper {
				return emptyRange()
			}
			lower, upper = ival, ival

		case slotLT, slotLE:
			bound, empty, ok := upperBound(val, slot == slotLT)
			if !ok || empty {
				return emptyRange()
			}
			if bound < upper {
				if bound < lower {
					return emptyRange()
				}
				upper = bound
			}

		case slotGE, slotGT:
			bound, empty, ok := lowerBound(val, slot == slotGT)
			if !ok || empty {
				return emptyRange()
			}
			if bound > lower {
				if bound > upper {
					return emptyRange()
				}
				lower = bound
			}

		default:
			return rr, Errorf(ZDB_INTERNAL, "zeries: unknown plan token %q", idxStr[argIx])
		}
	}

	// The step magnitude must fit a positive int64; 0 and MinInt64 cannot.
	step := exact[slotStep]
	var ustep uint64
	switch {
	case step > 0:
		ustep = uint64(step)
	case step < 0 && step > math.MinInt64:
		ustep = uint64(-step)
	default:
		return rr, NewError(ZDB_RANGE, "step parameter out of range")
	}

	// Shrink [lower, upper] onto the congruence lattice of base mod ustep.
	base := exact[slotBase]
	if ustep > 1 {
		lowest := UsubMag(base, Udiff(base, math.MinInt64)/ustep*ustep)
		if upper < lowest {
			return emptyRange()
		}
		upper = UaddMag(lowest, Udiff(upper, lowest)/ustep*ustep)

		highest := UaddMag(base, Udiff(math.MaxInt64, base)/ustep*ustep)
		if lower > highest {
			return emptyRange()
		}
		lower = UsubMag(highest, Udiff(highest, lower)/ustep*ustep)

		if lower > upper {
			return emptyRange()
		}
	}

	length := Udiff(upper, lower) / ustep
	offset := exact[slotOffset]
	if offset > 0 && uint64(offset) > length {
		return emptyRange()
	}
	limit := exact[slotLimit]
	if seen&(1<<slotLimit) != 0 && limit == 0 {
		// A supplied LIMIT 0 is a real limit, not the "unlimited" sentinel.
		return emptyRange()
	}

	if idxNum&flagDesc == 0 {
		rr.start = lower
		rr.stop = upper
		rr.step = int64(ustep)
		if offset > 0 {
			rr.start = UaddMag(rr.start, uint64(offset)*ustep)
			length -= uint64(offset)
		}
		if limit > 0 && uint64(limit) <= length {
			rr.stop = UaddMag(rr.start, uint64(limit-1)*ustep)
		}
	} else {
		rr.start = upper
		rr.stop = lower
		rr.step = -int64(ustep)
		if offset > 0 {
			rr.start = UsubMag(rr.start, uint64(offset)*ustep)
			length -= uint64(offset)
		}
		if limit > 0 && uint64(limit) <= length {
			rr.stop = UsubMag(rr.start, uint64(limit-1)*ustep)
		}
	}
	rr.userStep = exact[slotStep]
	rr.userBase = exact[slotBase]
	return rr, nil
}
