package chart

// Group is a labeled block of seats requested by the caller.
type Group struct {
	Label    string `json:"label" toml:"label"`
	NumSeats int    `json:"num_seats" toml:"num_seats"`
}

// Row is one concentric arc of seats. Row 0 is the innermost.
type Row struct {
	Radius    float64
	SeatCount int
}

// Seat is a computed seat position.
//
// ArcDistance is an ordering key derived from the seat's angle. It decreases
// from the right end of a row (angle 0) to the left end (angle π) and does not
// depend on the row radius, so sorting by it interleaves all rows left to
// right. It is not a true arc length.
type Seat struct {
	X, Y        float64
	ArcDistance float64
}

// Point returns the seat's coordinates without the ordering key.
func (s Seat) Point() Point { return Point{X: s.X, Y: s.Y} }

// Point is a seat coordinate in the output chart.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GroupSeats holds the seats assigned to one group, in global seat order.
type GroupSeats struct {
	Label string  `json:"label"`
	Seats []Point `json:"seats"`
}

// Chart is the result of a layout computation.
// Radius is the circle radius of a single seat; it is 0 when there are no seats.
type Chart struct {
	Groups []GroupSeats `json:"groups"`
	Radius float64      `json:"radius"`
}

// SeatCount returns the number of seats assigned across all groups.
func (c Chart) SeatCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Seats)
	}
	return n
}
