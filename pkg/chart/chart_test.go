package chart

import (
	"math"
	"strings"
	"testing"

	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

func TestCircleRadius(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		seats int
		want  float64
	}{
		{"zero seats", 100, 0, 0},
		{"negative seats", 100, -3, 0},
		{"twelve seats", 100, 12, 100/math.Sqrt(12) - 125.0/12 + 0.01},
		{"one seat small scale", 1, 1, 0.75},
		{"four seats", 10, 4, 5 - 3.125 + 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircleRadius(tt.scale, tt.seats); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CircleRadius(%v, %d) = %v, want %v", tt.scale, tt.seats, got, tt.want)
			}
		})
	}
}

func TestBuildTwelveSeatsSingleGroup(t *testing.T) {
	c, err := Build(100, []Group{{Label: "A", NumSeats: 12}})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(c.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(c.Groups))
	}
	if c.Groups[0].Label != "A" {
		t.Errorf("label = %q, want A", c.Groups[0].Label)
	}
	if n := len(c.Groups[0].Seats); n != 12 {
		t.Errorf("got %d seats, want 12", n)
	}
	if c.Radius <= 0 {
		t.Errorf("radius = %v, want > 0", c.Radius)
	}
}

func TestBuildSplitsGroupsExactly(t *testing.T) {
	groups := []Group{
		{Label: "Left", NumSeats: 50},
		{Label: "Centre", NumSeats: 30},
		{Label: "Right", NumSeats: 20},
	}
	c, err := Build(100, groups)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	seen := make(map[Point]string)
	for i, g := range c.Groups {
		if g.Label != groups[i].Label {
			t.Errorf("group %d label = %q, want %q", i, g.Label, groups[i].Label)
		}
		if len(g.Seats) != groups[i].NumSeats {
			t.Errorf("group %q has %d seats, want %d", g.Label, len(g.Seats), groups[i].NumSeats)
		}
		for _, p := range g.Seats {
			if other, dup := seen[p]; dup {
				t.Errorf("seat %+v shared by %q and %q", p, other, g.Label)
			}
			seen[p] = g.Label
		}
	}
	if len(seen) != 100 {
		t.Errorf("got %d distinct seats, want 100", len(seen))
	}
}

func TestBuildSingleSeat(t *testing.T) {
	l, err := Compute(1, []Group{{Label: "Speaker", NumSeats: 1}})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if len(l.Rows) != 1 || l.Rows[0].SeatCount != 1 {
		t.Fatalf("rows = %+v, want one row with one seat", l.Rows)
	}
	if len(l.Seats) != 1 {
		t.Fatalf("got %d seats, want 1", len(l.Seats))
	}
	s := l.Seats[0]
	if math.IsNaN(s.X) || math.IsNaN(s.Y) {
		t.Fatalf("seat has NaN coordinates: %+v", s)
	}
	if s.X != l.Rows[0].Radius {
		t.Errorf("seat x = %v, want row radius %v", s.X, l.Rows[0].Radius)
	}
}

func TestBuildSingleSeatLargeScaleRejected(t *testing.T) {
	for _, scale := range []float64{2, 100} {
		_, err := Build(scale, []Group{{Label: "Speaker", NumSeats: 1}})
		if !herrors.Is(err, herrors.ErrCodeInvalidGeometry) {
			t.Fatalf("scale %v: got %v, want INVALID_GEOMETRY", scale, err)
		}
		if msg := herrors.Message(err); !strings.Contains(msg, "scale below 2") {
			t.Errorf("scale %v: message %q does not suggest a smaller scale", scale, msg)
		}
	}

	if _, err := Build(1, []Group{{Label: "Speaker", NumSeats: 1}}); err != nil {
		t.Errorf("scale 1: %v", err)
	}
}

func TestBuildZeroSeats(t *testing.T) {
	groups := []Group{{Label: "A", NumSeats: 0}, {Label: "B", NumSeats: 0}}
	c, err := Build(100, groups)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if c.Radius != 0 {
		t.Errorf("radius = %v, want 0", c.Radius)
	}
	if len(c.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(c.Groups))
	}
	for _, g := range c.Groups {
		if g.Seats == nil || len(g.Seats) != 0 {
			t.Errorf("group %q seats = %v, want empty non-nil", g.Label, g.Seats)
		}
	}

	c, err = Build(50, nil)
	if err != nil {
		t.Fatalf("Build(nil) error: %v", err)
	}
	if len(c.Groups) != 0 || c.Radius != 0 {
		t.Errorf("Build(nil) = %+v", c)
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		scale  float64
		groups []Group
		code   herrors.Code
	}{
		{"zero scale", 0, []Group{{Label: "A", NumSeats: 3}}, herrors.ErrCodeInvalidScale},
		{"negative scale", -5, []Group{{Label: "A", NumSeats: 3}}, herrors.ErrCodeInvalidScale},
		{"NaN scale", math.NaN(), []Group{{Label: "A", NumSeats: 3}}, herrors.ErrCodeInvalidScale},
		{"negative seats", 100, []Group{{Label: "A", NumSeats: 3}, {Label: "B", NumSeats: -1}}, herrors.ErrCodeInvalidGroup},
		{"control label", 100, []Group{{Label: "A\x00", NumSeats: 3}}, herrors.ErrCodeInvalidGroup},
		{"too many seats", 100, []Group{{Label: "A", NumSeats: MaxTotalSeats + 1}}, herrors.ErrCodeInvalidGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.scale, tt.groups)
			if !herrors.Is(err, tt.code) {
				t.Fatalf("got %v, want %s", err, tt.code)
			}
			if c.Groups != nil {
				t.Errorf("rejected input produced groups: %+v", c.Groups)
			}
		})
	}
}

func TestComputeSeatCountSweep(t *testing.T) {
	for n := 2; n <= 700; n += 7 {
		l, err := Compute(100, []Group{{Label: "A", NumSeats: n}})
		if err != nil {
			t.Fatalf("Compute(%d) error: %v", n, err)
		}
		if len(l.Seats) != n {
			t.Fatalf("Compute(%d) placed %d seats", n, len(l.Seats))
		}
		if totalRowSeats(l.Rows) != n {
			t.Fatalf("Compute(%d) rows sum to %d", n, totalRowSeats(l.Rows))
		}
		for i := 1; i < len(l.Seats); i++ {
			if l.Seats[i].ArcDistance < l.Seats[i-1].ArcDistance {
				t.Fatalf("Compute(%d) seats not ordered at %d", n, i)
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	groups := []Group{{Label: "A", NumSeats: 77}, {Label: "B", NumSeats: 23}}
	a, err := Build(42, groups)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(42, groups)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Groups {
		for j := range a.Groups[i].Seats {
			if a.Groups[i].Seats[j] != b.Groups[i].Seats[j] {
				t.Fatalf("group %d seat %d differs between runs", i, j)
			}
		}
	}
}

func TestPartition(t *testing.T) {
	seats := PlaceSeats([]Row{{Radius: 8, SeatCount: 6}})

	t.Run("exact", func(t *testing.T) {
		got := Partition(seats, []Group{{"A", 2}, {"B", 4}})
		if len(got[0].Seats) != 2 || len(got[1].Seats) != 4 {
			t.Fatalf("got sizes %d, %d", len(got[0].Seats), len(got[1].Seats))
		}
		if got[0].Seats[0] != seats[0].Point() || got[1].Seats[0] != seats[2].Point() {
			t.Error("partition does not follow seat order")
		}
	})

	t.Run("runs out", func(t *testing.T) {
		got := Partition(seats, []Group{{"A", 4}, {"B", 4}, {"C", 1}})
		sizes := []int{len(got[0].Seats), len(got[1].Seats), len(got[2].Seats)}
		if sizes[0] != 4 || sizes[1] != 2 || sizes[2] != 0 {
			t.Errorf("sizes = %v, want [4 2 0]", sizes)
		}
		if got[2].Seats == nil {
			t.Error("exhausted group should get an empty, non-nil slice")
		}
	})

	t.Run("leftover", func(t *testing.T) {
		got := Partition(seats, []Group{{"A", 1}})
		if len(got) != 1 || len(got[0].Seats) != 1 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("negative count", func(t *testing.T) {
		got := Partition(seats, []Group{{"A", -3}, {"B", 2}})
		if len(got[0].Seats) != 0 || got[1].Seats[0] != seats[0].Point() {
			t.Errorf("negative count should consume nothing: %+v", got)
		}
	})
}

func TestChartSeatCount(t *testing.T) {
	c := Chart{Groups: []GroupSeats{{Seats: make([]Point, 3)}, {Seats: make([]Point, 4)}}}
	if got := c.SeatCount(); got != 7 {
		t.Errorf("SeatCount() = %d, want 7", got)
	}
}
