package simplex

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"q.log/lp/model"
)

// Status is the terminal state of a solve.
type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the terminal report of a solve or a warm-started
// re-optimization. Objective and X are stated in the problem's original
// sense, undoing the internal max normalization of a Minimize problem.
type Result struct {
	Status    Status
	Objective float64

	// X holds a value for every standard-form column: structural variables
	// first, then slack/surplus.
	X []float64

	// Pivots is the total number of basis exchanges performed.
	Pivots int

	// UnboundedVar and UnboundedDir certify an Unbounded status: the
	// objective improves without limit along X + t·UnboundedDir, with
	// UnboundedVar the entering variable that exposed the ray.
	UnboundedVar int
	UnboundedDir []float64

	// PhaseOneObjective is the residual infeasibility (minimal attainable
	// sum of artificial variables) certifying an Infeasible status.
	PhaseOneObjective float64
}

// IsOptimal reports whether the solve reached an optimum.
func (r *Result) IsOptimal() bool { return r.Status == Optimal }

// IsUnbounded reports whether the objective is unbounded.
func (r *Result) IsUnbounded() bool { return r.Status == Unbounded }

// IsInfeasible reports whether no feasible point exists.
func (r *Result) IsInfeasible() bool { return r.Status == Infeasible }

// Solved couples a terminal Result with the basis state that produced it.
// It is the entry point for warm-started re-optimization: the retained B⁻¹
// prices new columns in O(m) and seeds the resumed pivot loop. A Solved is
// mutated in place by AddColumn; use Clone to keep a rollback snapshot.
type Solved struct {
	Result

	sf  *model.StandardForm
	eng *engine
}

// StandardForm returns the standard form this state solves, including any
// columns appended by AddColumn.
func (s *Solved) StandardForm() *model.StandardForm { return s.sf }

// BasisIndexes returns the basic standard-form column per row; -1 marks a
// seat still held by an artificial variable of a redundant row.
func (s *Solved) BasisIndexes() []int {
	out := make([]int, s.eng.m)
	for i, j := range s.eng.basis.idx {
		out[i] = s.eng.colID[j]
	}

	return out
}

// Duals returns the simplex multipliers y = cᵦᵗB⁻¹, one per constraint row,
// in the problem's original sense. At an optimum these are the shadow
// prices of the right-hand sides.
func (s *Solved) Duals() []float64 {
	e := s.eng
	e.computeDual(e.cost)

	out := make([]float64, e.m)
	for i := 0; i < e.m; i++ {
		v := e.dual.At(0, i)
		if s.sf.Negated {
			v = -v
		}
		out[i] = v
	}

	return out
}

// ReducedCostAt prices standard-form column j against the current basis.
// Basic columns price to zero; at an optimum every non-basic column prices
// to a non-negative value.
func (s *Solved) ReducedCostAt(j int) (float64, error) {
	if j < 0 || j >= s.sf.NumCols {
		return 0, fmt.Errorf("%w: column %d out of range [0,%d)", ErrDimensionMismatch, j, s.sf.NumCols)
	}

	e := s.eng
	e.computeDual(e.cost)
	ij := e.extToInt[j]

	return mat.Dot(e.dual.RowView(0), e.a.ColView(ij)) - e.cost[ij], nil
}

// Clone deep-copies the solved state, so what-if column additions can be
// explored without disturbing the original.
func (s *Solved) Clone() *Solved {
	cp := &Solved{Result: s.Result, sf: s.sf.Clone(), eng: s.eng.clone()}
	cp.Result.X = append([]float64(nil), s.Result.X...)
	if s.Result.UnboundedDir != nil {
		cp.Result.UnboundedDir = append([]float64(nil), s.Result.UnboundedDir...)
	}

	return cp
}

// result assembles the user-facing report from terminal engine state.
func (e *engine) result(st Status, negated bool) Result {
	res := Result{Status: st, Pivots: e.pivots, UnboundedVar: -1}

	switch st {
	case Optimal:
		res.X = e.solution()
		obj := e.objective(e.cost)
		if negated {
			obj = -obj
		}
		res.Objective = obj
	case Unbounded:
		res.X = e.solution()
		res.UnboundedVar = e.ubVar
		res.UnboundedDir = e.ubDir
	case Infeasible:
		res.PhaseOneObjective = e.p1obj
	}

	return res
}
