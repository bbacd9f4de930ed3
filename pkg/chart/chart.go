package chart

import (
	"math"

	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

// MaxTotalSeats is the largest seat count accepted by [Compute].
const MaxTotalSeats = 1_000_000

// paddingRatio relates the row padding to the circle radius.
const paddingRatio = 5

// Layout is the full result of one computation: the planned rows and every
// seat in global order.
type Layout struct {
	TotalSeats   int
	CircleRadius float64
	Padding      float64
	Rows         []Row
	Seats        []Seat // sorted by ArcDistance
}

// Chart partitions the layout's ordered seats among groups. See [Partition].
func (l *Layout) Chart(groups []Group) Chart {
	return Chart{
		Groups: Partition(l.Seats, groups),
		Radius: l.CircleRadius,
	}
}

// CircleRadius returns the radius of a single seat for the given scale and
// seat count:
//
//	scale/sqrt(n) - 1.25*scale/n + 1/scale
//
// Zero seats yield 0 instead of the NaN the formula would produce.
//
// The expression is negative for a single seat once scale reaches 2; [Compute]
// rejects that case.
func CircleRadius(scale float64, totalSeats int) float64 {
	if totalSeats <= 0 {
		return 0
	}
	n := float64(totalSeats)
	return scale/math.Sqrt(n) - (scale*1.25)/n + 1/scale
}

// Padding returns the row padding for a circle radius.
func Padding(circleRadius float64) float64 {
	return circleRadius / paddingRatio
}

// TotalSeats sums the seat counts of all groups.
func TotalSeats(groups []Group) int {
	var n int
	for _, g := range groups {
		n += g.NumSeats
	}
	return n
}

// Validate checks scale and groups before any computation.
func Validate(scale float64, groups []Group) error {
	if err := herrors.ValidateScale(scale); err != nil {
		return err
	}
	total := 0
	for _, g := range groups {
		if err := herrors.ValidateLabel(g.Label); err != nil {
			return err
		}
		if err := herrors.ValidateSeatCount(g.Label, g.NumSeats); err != nil {
			return err
		}
		total += g.NumSeats
		if total > MaxTotalSeats {
			return herrors.New(herrors.ErrCodeInvalidGroup, "total seat count exceeds %d", MaxTotalSeats)
		}
	}
	return nil
}

// Compute validates the input and computes rows and globally ordered seats
// for the total seat count of groups.
func Compute(scale float64, groups []Group, opts ...Option) (*Layout, error) {
	if err := Validate(scale, groups); err != nil {
		return nil, err
	}

	total := TotalSeats(groups)
	l := &Layout{TotalSeats: total, Seats: []Seat{}}
	if total == 0 {
		return l, nil
	}

	l.CircleRadius = CircleRadius(scale, total)
	l.Padding = Padding(l.CircleRadius)
	if !isFinite(l.CircleRadius) || l.CircleRadius <= 0 {
		if total == 1 {
			return nil, herrors.New(herrors.ErrCodeInvalidGeometry,
				"scale %v gives a non-positive seat radius (%v) for a single seat; use a scale below 2", scale, l.CircleRadius)
		}
		return nil, herrors.New(herrors.ErrCodeInvalidGeometry,
			"scale %v gives a non-positive seat radius (%v) for %d seats; use a smaller scale", scale, l.CircleRadius, total)
	}

	rows, err := PlanRows(total, l.CircleRadius, l.Padding, opts...)
	if err != nil {
		return nil, err
	}
	l.Rows = rows

	seats := PlaceSeats(rows)
	if len(seats) != total {
		return nil, herrors.New(herrors.ErrCodeInternal, "placed %d seats, want %d", len(seats), total)
	}
	l.Seats = SortSeats(seats)
	return l, nil
}

// Build computes the chart for groups at the given scale.
func Build(scale float64, groups []Group, opts ...Option) (Chart, error) {
	l, err := Compute(scale, groups, opts...)
	if err != nil {
		return Chart{}, err
	}
	return l.Chart(groups), nil
}

// Partition slices seats into consecutive chunks, one per group, in group
// order. Group i receives the NumSeats seats following those of groups 0..i-1.
//
// Partition does not reconcile counts. If the groups ask for more seats than
// exist, trailing groups get fewer (possibly none); if they ask for fewer, the
// remaining seats are left unassigned. Negative counts are treated as zero.
func Partition(seats []Seat, groups []Group) []GroupSeats {
	out := make([]GroupSeats, len(groups))
	offset := 0
	for i, g := range groups {
		want := max(g.NumSeats, 0)
		start := min(offset, len(seats))
		end := min(offset+want, len(seats))

		points := make([]Point, 0, end-start)
		for _, s := range seats[start:end] {
			points = append(points, s.Point())
		}
		out[i] = GroupSeats{Label: g.Label, Seats: points}
		offset += want
	}
	return out
}
