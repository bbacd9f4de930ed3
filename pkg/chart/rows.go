package chart

import (
	"math"

	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

const (
	innerRowOffset = 4   // the innermost row sits this many seat diameters out
	rowGapFactor   = 2.5 // extra padding added per row
	seatArcFactor  = 2.5 // arc length reserved per seat, in circle radii
)

// rowRadius returns the distance of row i from the center.
func rowRadius(i int, circleRadius, padding float64) float64 {
	return circleRadius*2*float64(i+innerRowOffset) + padding*rowGapFactor*float64(i)
}

// rowCapacity returns how many seats fit on a half circle of the given radius.
func rowCapacity(radius, circleRadius float64) int {
	return int(math.Ceil(math.Pi * radius / (circleRadius * seatArcFactor)))
}

// PlanRows returns the rows needed to seat exactly totalSeats seats.
//
// Rows are appended outward until their combined capacity reaches totalSeats,
// then the surplus is trimmed (see [trimSurplus]). The returned seat counts
// always sum to totalSeats and radii strictly increase with the row index.
//
// A zero totalSeats yields no rows. circleRadius must be positive and finite,
// padding non-negative and finite; anything else, or needing more rows than
// [WithMaxRows] allows, is reported as INVALID_GEOMETRY.
func PlanRows(totalSeats int, circleRadius, padding float64, opts ...Option) ([]Row, error) {
	cfg := newConfig(opts)

	if totalSeats < 0 {
		return nil, herrors.New(herrors.ErrCodeInvalidGeometry, "seat count must be non-negative, got %d", totalSeats)
	}
	if totalSeats == 0 {
		return nil, nil
	}
	if !isFinite(circleRadius) || circleRadius <= 0 {
		return nil, herrors.New(herrors.ErrCodeInvalidGeometry, "circle radius must be positive, got %v", circleRadius)
	}
	if !isFinite(padding) || padding < 0 {
		return nil, herrors.New(herrors.ErrCodeInvalidGeometry, "padding must be non-negative, got %v", padding)
	}

	var (
		radii      []float64
		capacities []int
		sum        int
	)
	for sum < totalSeats {
		if len(radii) >= cfg.maxRows {
			return nil, herrors.New(herrors.ErrCodeInvalidGeometry,
				"%d seats need more than %d rows", totalSeats, cfg.maxRows)
		}
		r := rowRadius(len(radii), circleRadius, padding)
		c := rowCapacity(r, circleRadius)
		if c < 1 {
			c = 1
		}
		radii = append(radii, r)
		capacities = append(capacities, c)
		sum += c
	}

	removals := trimSurplus(capacities, totalSeats)

	rows := make([]Row, len(radii))
	for i := range rows {
		count := capacities[i] - removals[i]
		if count < 0 {
			return nil, herrors.New(herrors.ErrCodeInternal,
				"row %d trimmed below zero (capacity %d, removed %d)", i, capacities[i], removals[i])
		}
		rows[i] = Row{Radius: radii[i], SeatCount: count}
	}

	if got := totalRowSeats(rows); got != totalSeats {
		return nil, herrors.New(herrors.ErrCodeInternal,
			"planned %d seats across %d rows, want %d", got, len(rows), totalSeats)
	}
	return rows, nil
}

// trimSurplus returns how many seats to remove from each row so that the
// remaining capacity equals target.
//
// Each row gives up floor(fraction * surplus / sum(fractions)) seats, where
// fraction is the row's capacity relative to the outermost row. Seats still
// owed afterwards are removed one per row starting from row 0, and the pass
// repeats if needed. A row never gives up more seats than it has.
func trimSurplus(capacities []int, target int) []int {
	removals := make([]int, len(capacities))
	if len(capacities) == 0 {
		return removals
	}

	surplus := sumInts(capacities) - target
	if surplus <= 0 {
		return removals
	}

	last := float64(capacities[len(capacities)-1])
	fractions := make([]float64, len(capacities))
	for i, c := range capacities {
		fractions[i] = float64(c) / last
	}
	share := float64(surplus) / sumFloats(fractions)

	for i, f := range fractions {
		removals[i] = min(int(math.Floor(f*share)), capacities[i])
	}

	owed := surplus - sumInts(removals)
	for owed > 0 {
		progressed := false
		for i := 0; i < len(removals) && owed > 0; i++ {
			if removals[i] < capacities[i] {
				removals[i]++
				owed--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	// Floating-point drift can round a share up past its exact value.
	for i := len(removals) - 1; i >= 0 && owed < 0; i-- {
		give := min(removals[i], -owed)
		removals[i] -= give
		owed += give
	}

	return removals
}
