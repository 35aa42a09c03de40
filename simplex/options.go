package simplex

import "fmt"

// Option configures a Solver at construction time.
type Option func(*Solver) error

// WithLogger routes per-pivot traces to l.
func WithLogger(l Logger) Option {
	return func(s *Solver) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}
		s.logger = l

		return nil
	}
}

// WithMaxIterations caps the total number of pivots per solve; exceeding it
// fails with ErrNumericalStall.
func WithMaxIterations(n int) Option {
	return func(s *Solver) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		s.maxIter = n

		return nil
	}
}

// WithTolerance sets the threshold below which reduced costs, pivot ratios
// and variable values are treated as zero.
func WithTolerance(tol float64) Option {
	return func(s *Solver) error {
		if tol <= 0 {
			return fmt.Errorf("tolerance must be positive, got %g", tol)
		}
		s.tol = tol

		return nil
	}
}

// WithPivotRule selects the entering-variable rule.
func WithPivotRule(r PivotRule) Option {
	return func(s *Solver) error {
		if r != Bland && r != Dantzig {
			return fmt.Errorf("unknown pivot rule %d", r)
		}
		s.rule = r

		return nil
	}
}
