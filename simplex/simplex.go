package simplex

import (
	"fmt"

	"q.log/lp/model"
)

const (
	// defaultTolerance classifies reduced costs, ratios and variable values
	// as zero.
	defaultTolerance = 1e-9
	// driftTol bounds ‖B·xᵦ − b‖∞; above it the basis inverse is rebuilt
	// exactly instead of compounding product-form error.
	driftTol = 1e-7
	// defaultMaxIterations caps total pivots per solve.
	defaultMaxIterations = 10000
	// blandTrigger is the run of consecutive degenerate pivots after which
	// Dantzig pricing falls back to Bland's anti-cycling rule.
	blandTrigger = 50
)

// PivotRule selects how the entering variable is chosen.
type PivotRule int

const (
	// Bland enters the lowest-index column with negative reduced cost.
	// Terminates finitely and gives reproducible pivot sequences.
	Bland PivotRule = iota
	// Dantzig enters the most negative reduced cost, ties to the lowest
	// index. Usually fewer pivots, but needs the Bland fallback on
	// degenerate stalls.
	Dantzig
)

// Solver runs the primal revised simplex method. A Solver is immutable after
// construction and may be shared; each Solve call owns its own state.
type Solver struct {
	logger  Logger
	maxIter int
	tol     float64
	rule    PivotRule
}

// New returns a Solver with production defaults, modified by opts.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		logger:  noopLogger{},
		maxIter: defaultMaxIterations,
		tol:     defaultTolerance,
		rule:    Bland,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("simplex: applying option: %w", err)
		}
	}

	return s, nil
}

// Solve optimizes the standardized program from its slack basis, running
// Phase I first when ≥ or = rows leave no feasible slack basis. Infeasible
// and Unbounded are ordinary result statuses; the error return is reserved
// for numerical failure (ErrNumericalStall).
func (s *Solver) Solve(sf *model.StandardForm) (*Solved, error) {
	e := newEngine(sf, s)
	st, err := e.solve()
	if err != nil {
		return nil, err
	}

	sol := &Solved{sf: sf, eng: e}
	sol.Result = e.result(st, sf.Negated)

	return sol, nil
}
