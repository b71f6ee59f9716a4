package quadtree

import "github.com/charmbracelet/log"

const (
	DefaultCapacity = 4
	DefaultMaxDepth = 10
)

type settings struct {
	capacity int
	maxDepth int
	logger   *log.Logger
}

type Option func(*settings)

// WithCapacity sets the number of bodies a leaf holds before it subdivides.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithMaxDepth caps subdivision. The root is depth 1.
func WithMaxDepth(d int) Option {
	return func(s *settings) {
		if d > 0 {
			s.maxDepth = d
		}
	}
}

// WithLogger sets the diagnostic channel for bodies that cannot be placed.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		capacity: DefaultCapacity,
		maxDepth: DefaultMaxDepth,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
