package chart

// DefaultMaxRows bounds the number of rows the planner will create.
// Realistic charts need well under a hundred rows; hitting the bound means the
// geometry is degenerate.
const DefaultMaxRows = 10000

// Option configures [PlanRows], [Compute] and [Build].
type Option func(*config)

type config struct {
	maxRows int
}

// WithMaxRows overrides [DefaultMaxRows]. Values below 1 are ignored.
func WithMaxRows(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRows = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxRows: DefaultMaxRows}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
