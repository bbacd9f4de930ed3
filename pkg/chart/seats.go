package chart

import (
	"cmp"
	"math"
	"slices"
)

// PlaceSeats computes a position and ordering key for every seat of every row.
// Seats are returned in row-major order: all seats of row 0 first, each row
// from angle 0 (right) to angle π (left). Rows with no seats are skipped.
func PlaceSeats(rows []Row) []Seat {
	seats := make([]Seat, 0, totalRowSeats(rows))
	for _, row := range rows {
		for j := 0; j < row.SeatCount; j++ {
			seats = append(seats, placeSeat(row.Radius, j, row.SeatCount))
		}
	}
	return seats
}

// seatFraction returns how far along its row seat j of n sits, in [0, 1].
// A lone seat sits at the start of the row.
func seatFraction(j, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(j) / float64(n-1)
}

func placeSeat(radius float64, j, n int) Seat {
	angle := math.Pi * seatFraction(j, n)
	x := math.Cos(angle) * radius
	y := -math.Sin(angle) * radius
	return Seat{X: x, Y: y, ArcDistance: arcDistance(radius, x, y)}
}

// arcDistance derives the ordering key from the squared chord between the
// seat and the left end of its row (-radius, 0), normalized by 2πr².
// The acos argument is clamped so rounding can never produce NaN.
func arcDistance(radius, x, y float64) float64 {
	twoPiRSquared := 2 * math.Pi * radius * radius
	if twoPiRSquared == 0 {
		return 0
	}
	dx, dy := -radius-x, -y
	return math.Acos(clamp(1-(dx*dx+dy*dy)/twoPiRSquared, -1, 1))
}

// SortSeats returns a copy of seats ordered by ascending ArcDistance.
// The sort is stable: seats with equal keys keep their generation order, so
// at equal angles inner rows come first.
func SortSeats(seats []Seat) []Seat {
	sorted := slices.Clone(seats)
	slices.SortStableFunc(sorted, func(a, b Seat) int {
		return cmp.Compare(a.ArcDistance, b.ArcDistance)
	})
	return sorted
}
