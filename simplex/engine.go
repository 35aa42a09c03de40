package simplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"q.log/lp/model"
)

// engine holds the working matrices of one solve. Artificial columns are
// appended after the standard-form columns; colID maps every working column
// back to its standard-form index, -1 for artificials.
type engine struct {
	s *Solver

	a    *mat.Dense    // m × n working constraint matrix
	rhs  *mat.VecDense // m
	cost []float64     // n, Phase II objective, maximization sense
	m, n int

	colID    []int // working column → standard-form column, -1 artificial
	extToInt []int // standard-form column → working column
	ext      int   // number of standard-form columns
	inBasis  []bool

	basis  *Basis
	pivots int

	// scratch reused every iteration; the pivot loop allocates nothing
	cb   *mat.Dense // 1×m basic objective coefficients
	dual *mat.Dense // 1×m cᵦᵗB⁻¹
	d    *mat.VecDense

	degenerate int  // consecutive zero-step pivots
	bland      bool // anti-cycling rule has taken over

	ubVar int
	ubDir []float64
	p1obj float64
}

func newEngine(sf *model.StandardForm, s *Solver) *engine {
	m := sf.NumRows
	ext := sf.NumCols
	nArt := len(sf.ArtificialRows)
	n := ext + nArt

	e := &engine{
		s:        s,
		a:        mat.NewDense(m, n, nil),
		rhs:      mat.NewVecDense(m, nil),
		cost:     make([]float64, n),
		m:        m,
		n:        n,
		colID:    make([]int, n),
		extToInt: make([]int, ext),
		ext:      ext,
		inBasis:  make([]bool, n),
		cb:       mat.NewDense(1, m, nil),
		dual:     mat.NewDense(1, m, nil),
		d:        mat.NewVecDense(m, nil),
		ubVar:    -1,
	}

	e.a.Slice(0, m, 0, ext).(*mat.Dense).Copy(sf.A)
	for i := 0; i < m; i++ {
		e.rhs.SetVec(i, sf.B.At(i, 0))
	}
	for j := 0; j < ext; j++ {
		e.cost[j] = sf.C.At(0, j)
		e.colID[j] = j
		e.extToInt[j] = j
	}

	// Artificial columns seed the Phase I basis seats of ≥ and = rows.
	artCol := make(map[int]int, nArt)
	for k, r := range sf.ArtificialRows {
		col := ext + k
		e.a.Set(r, col, 1)
		e.colID[col] = -1
		artCol[r] = col
	}

	idx := make([]int, m)
	for i := 0; i < m; i++ {
		if col, ok := artCol[i]; ok {
			idx[i] = col
		} else {
			idx[i] = sf.SlackIndexes[i]
		}
		e.inBasis[idx[i]] = true
	}
	e.basis = newBasis(idx, e.rhs)

	return e
}

func (e *engine) hasArtificial() bool { return e.n > e.ext }

// solve runs Phase I when the slack basis is not feasible, then Phase II
// from whatever feasible basis Phase I leaves behind.
func (e *engine) solve() (Status, error) {
	if e.hasArtificial() {
		phase1 := make([]float64, e.n)
		for j := range phase1 {
			if e.colID[j] < 0 {
				phase1[j] = -1
			}
		}

		st, err := e.iterate(phase1, true)
		if err != nil {
			return 0, err
		}
		if st != Optimal {
			// Phase I maximizes -Σ artificials, which is bounded by zero;
			// anything but an optimum means the arithmetic went bad.
			return 0, fmt.Errorf("%w: phase I terminated %s", ErrNumericalStall, st)
		}

		if obj := e.objective(phase1); obj < -e.s.tol {
			e.p1obj = -obj

			return Infeasible, nil
		}

		e.driveOutArtificials()
	}

	return e.iterate(e.cost, false)
}

// iterate is the pivot loop shared by both phases.
func (e *engine) iterate(cost []float64, phaseOne bool) (Status, error) {
	for {
		if e.pivots >= e.s.maxIter {
			return 0, fmt.Errorf("%w: no convergence after %d pivots", ErrNumericalStall, e.s.maxIter)
		}

		e.computeDual(cost)

		enter := e.price(cost, phaseOne)
		if enter < 0 {
			return Optimal, nil
		}

		e.d.MulVec(e.basis.inv, e.a.ColView(enter))

		row := e.ratioRow()
		if row < 0 {
			e.recordRay(enter)

			return Unbounded, nil
		}

		theta := e.basis.xb.AtVec(row) / e.d.AtVec(row)
		leave := e.basis.idx[row]
		e.inBasis[leave] = false
		e.inBasis[enter] = true
		e.basis.pivot(enter, row, e.d)
		e.pivots++
		e.s.logger.Print("pivot ", e.pivots, ": enter ", enter, " leave ", leave, " theta ", theta)

		if theta <= e.s.tol {
			e.degenerate++
			if !e.bland && e.degenerate >= blandTrigger {
				e.bland = true
				e.s.logger.Print("degenerate stall after ", e.degenerate, " pivots, switching to Bland's rule")
			}
		} else {
			e.degenerate = 0
		}

		if e.basis.residual(e.a, e.rhs) > driftTol {
			if err := e.basis.refactorize(e.a, e.rhs); err != nil {
				return 0, err
			}
			if res := e.basis.residual(e.a, e.rhs); res > driftTol {
				return 0, fmt.Errorf("%w: residual %g after refactorization", ErrNumericalStall, res)
			}
		}
	}
}

// computeDual forms the dual vector cᵦᵗB⁻¹ once per iteration; pricing any
// column is then a single dot product.
func (e *engine) computeDual(cost []float64) {
	for i, j := range e.basis.idx {
		e.cb.Set(0, i, cost[j])
	}
	e.dual.Mul(e.cb, e.basis.inv)
}

// price selects the entering column among non-basic columns with reduced
// cost rⱼ = cᵦᵗB⁻¹Aⱼ − cⱼ below -tol. Bland's rule takes the lowest such
// index; Dantzig's takes the most negative, ties to the lowest index.
// Returns -1 when no column improves, i.e. the basis is optimal.
func (e *engine) price(cost []float64, phaseOne bool) int {
	dual := e.dual.RowView(0)
	best := -1
	bestR := -e.s.tol

	for j := 0; j < e.n; j++ {
		if e.inBasis[j] {
			continue
		}
		if !phaseOne && e.colID[j] < 0 {
			continue
		}

		r := mat.Dot(dual, e.a.ColView(j)) - cost[j]
		if r >= -e.s.tol {
			continue
		}
		if e.bland || e.s.rule == Bland {
			return j
		}
		if r < bestR {
			bestR = r
			best = j
		}
	}

	return best
}

// ratioRow runs the minimal-ratio test over d = B⁻¹A_enter. Ties go to the
// row whose basic variable has the lowest index. Returns -1 when no entry
// of d is positive, the unboundedness certificate.
func (e *engine) ratioRow() int {
	row := -1
	minRatio := math.Inf(1)

	for i := 0; i < e.m; i++ {
		di := e.d.AtVec(i)
		if di <= e.s.tol {
			continue
		}
		xi := e.basis.xb.AtVec(i)
		if xi < 0 && xi > -e.s.tol {
			xi = 0
		}
		ratio := xi / di
		if ratio < minRatio-e.s.tol {
			minRatio = ratio
			row = i

			continue
		}
		if row >= 0 && math.Abs(ratio-minRatio) <= e.s.tol && e.basis.idx[i] < e.basis.idx[row] {
			minRatio = ratio
			row = i
		}
	}

	return row
}

// driveOutArtificials swaps any artificial variable still basic after a
// feasible Phase I for a non-basic real column with a nonzero entry in its
// row, a zero-length pivot. A row with no such column is redundant and its
// artificial stays pinned at zero.
func (e *engine) driveOutArtificials() {
	for i := 0; i < e.m; i++ {
		if e.colID[e.basis.idx[i]] >= 0 {
			continue
		}
		for j := 0; j < e.n; j++ {
			if e.colID[j] < 0 || e.inBasis[j] {
				continue
			}
			e.d.MulVec(e.basis.inv, e.a.ColView(j))
			if math.Abs(e.d.AtVec(i)) <= e.s.tol {
				continue
			}

			leave := e.basis.idx[i]
			e.inBasis[leave] = false
			e.inBasis[j] = true
			e.basis.pivot(j, i, e.d)
			e.s.logger.Print("drive out artificial ", leave, " for column ", j)

			break
		}
	}
}

// recordRay stores the unboundedness certificate: the recession direction in
// standard-form coordinates, +1 for the entering column and -dᵢ for each
// basic variable.
func (e *engine) recordRay(enter int) {
	ray := make([]float64, e.ext)
	if id := e.colID[enter]; id >= 0 {
		ray[id] = 1
	}
	for i, j := range e.basis.idx {
		if id := e.colID[j]; id >= 0 {
			ray[id] = -e.d.AtVec(i)
		}
	}

	e.ubVar = e.colID[enter]
	e.ubDir = ray
}

func (e *engine) objective(cost []float64) float64 {
	var z float64
	for i, j := range e.basis.idx {
		z += cost[j] * e.basis.xb.AtVec(i)
	}

	return z
}

// solution expands xᵦ into a dense vector over the standard-form columns.
func (e *engine) solution() []float64 {
	x := make([]float64, e.ext)
	for i, j := range e.basis.idx {
		if id := e.colID[j]; id >= 0 {
			v := e.basis.xb.AtVec(i)
			if v < 0 && v > -e.s.tol {
				v = 0
			}
			x[id] = v
		}
	}

	return x
}

// reducedCost prices an arbitrary column against the current basis using the
// freshly computed dual vector: cᵦᵗB⁻¹·col − objCoeff.
func (e *engine) reducedCost(col mat.Vector, objCoeff float64) float64 {
	e.computeDual(e.cost)

	return mat.Dot(e.dual.RowView(0), col) - objCoeff
}

// addColumn appends one standard-form column to the working matrix. objCoeff
// is already in the internal maximization sense.
func (e *engine) addColumn(col []float64, objCoeff float64) {
	e.a = mat.DenseCopyOf(e.a.Grow(0, 1))
	e.a.SetCol(e.n, col)
	e.cost = append(e.cost, objCoeff)
	e.colID = append(e.colID, e.ext)
	e.extToInt = append(e.extToInt, e.n)
	e.inBasis = append(e.inBasis, false)
	e.n++
	e.ext++
}

func (e *engine) clone() *engine {
	cp := *e
	cp.a = mat.DenseCopyOf(e.a)
	cp.rhs = mat.VecDenseCopyOf(e.rhs)
	cp.cost = append([]float64(nil), e.cost...)
	cp.colID = append([]int(nil), e.colID...)
	cp.extToInt = append([]int(nil), e.extToInt...)
	cp.inBasis = append([]bool(nil), e.inBasis...)
	cp.basis = e.basis.clone()
	cp.cb = mat.NewDense(1, e.m, nil)
	cp.dual = mat.NewDense(1, e.m, nil)
	cp.d = mat.NewVecDense(e.m, nil)
	if e.ubDir != nil {
		cp.ubDir = append([]float64(nil), e.ubDir...)
	}

	return &cp
}
