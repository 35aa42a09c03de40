package simplex

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ColumnReport is the outcome of offering a new column to a solved problem.
type ColumnReport struct {
	// ReducedCost is the candidate's reduced cost against the basis that was
	// current when it was offered, in the internal maximization sense:
	// negative means entering the column improves the objective.
	ReducedCost float64

	// Beneficial reports whether the column was accepted and the problem
	// re-optimized.
	Beneficial bool

	// Pivots counts only the incremental pivots of the warm-started
	// re-optimization; zero when the column was rejected.
	Pivots int

	// Result is the new terminal state after re-optimization, nil when the
	// column was rejected.
	Result *Result
}

// ReducedCost prices a candidate column (objective coefficient stated in the
// problem's original sense) against the existing basis without modifying
// anything: cᵦᵗB⁻¹·col − c. This is O(m) work, not a re-solve.
func (s *Solved) ReducedCost(col []float64, objCoeff float64) (float64, error) {
	if s.Status != Optimal {
		return 0, fmt.Errorf("%w: status is %s", ErrInvalidState, s.Status)
	}
	if len(col) != s.sf.NumRows {
		return 0, fmt.Errorf("%w: column has %d rows, want %d", ErrDimensionMismatch, len(col), s.sf.NumRows)
	}

	if s.sf.Negated {
		objCoeff = -objCoeff
	}
	v := mat.NewVecDense(len(col), append([]float64(nil), col...))

	return s.eng.reducedCost(v, objCoeff), nil
}

// AddColumn offers a new variable, given as its constraint column and
// objective coefficient, to an optimally solved problem. The column is
// priced against the existing B⁻¹ first: when its reduced cost shows no
// improvement it is rejected and the solved state is left untouched.
// Otherwise the column is appended to the standard form and the engine
// resumes pivoting from the current optimal basis instead of restarting
// from a slack basis; the report carries the incremental pivot count, which
// is the point of warm starting.
//
// The receiver is mutated in place on acceptance; Clone first to keep a
// rollback snapshot.
func (s *Solved) AddColumn(col []float64, objCoeff float64) (*ColumnReport, error) {
	rc, err := s.ReducedCost(col, objCoeff)
	if err != nil {
		return nil, err
	}
	if rc >= -s.eng.s.tol {
		return &ColumnReport{ReducedCost: rc}, nil
	}

	if err := s.sf.AddColumn(col, objCoeff); err != nil {
		return nil, err
	}
	e := s.eng
	e.addColumn(col, s.sf.C.At(0, s.sf.NumCols-1))

	before := e.pivots
	st, err := e.iterate(e.cost, false)
	if err != nil {
		return nil, err
	}
	s.Result = e.result(st, s.sf.Negated)

	return &ColumnReport{
		ReducedCost: rc,
		Beneficial:  true,
		Pivots:      e.pivots - before,
		Result:      &s.Result,
	}, nil
}
