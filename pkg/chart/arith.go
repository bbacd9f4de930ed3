package chart

import "math"

func sumInts(xs []int) int {
	var s int
	for _, x := range xs {
		s += x
	}
	return s
}

func sumFloats(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// clamp limits v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func totalRowSeats(rows []Row) int {
	var n int
	for _, r := range rows {
		n += r.SeatCount
	}
	return n
}
