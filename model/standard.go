package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StandardForm is a linear program in equality form: maximize Cx subject to
// Ax = B, x ≥ 0. Slack and surplus columns have already been appended; rows
// listed in ArtificialRows have no natural basic column and need an
// artificial variable to seed a feasible Phase I basis.
type StandardForm struct {
	// A is the m×n constraint matrix.
	A *mat.Dense

	// B is the m×1 right-hand side, non-negative after standardization.
	B *mat.Dense

	// C is the 1×n objective row, internally always a maximization.
	C *mat.Dense

	NumRows int
	NumCols int

	// NumStructural is the number of original decision variables; columns
	// [NumStructural, NumCols) are slack/surplus.
	NumStructural int

	// SlackIndexes maps each row to its slack or surplus column, -1 for
	// equality rows.
	SlackIndexes []int

	// ArtificialRows lists the rows (GE and EQ) whose basis seat must be
	// filled by an artificial variable in Phase I.
	ArtificialRows []int

	// Negated records that the original problem was a minimization and C was
	// negated; reported objectives must be negated back.
	Negated bool
}

// Standardize freezes the problem into equality standard form:
//   - variable bounds become extra rows (lower > 0 as ≥, finite upper as ≤)
//   - rows with negative right-hand side are multiplied by -1
//   - each ≤ row gains a +1 slack column, each ≥ row a -1 surplus column
//   - a Minimize objective is negated so the engine always maximizes
func (p *Problem) Standardize() (*StandardForm, error) {
	n0 := len(p.obj)
	if n0 == 0 {
		return nil, fmt.Errorf("%w: no variables", ErrMalformedProblem)
	}
	if len(p.cons) == 0 {
		return nil, fmt.Errorf("%w: no constraints", ErrMalformedProblem)
	}

	rows := make([]Constraint, 0, len(p.cons)+2*n0)
	for i, con := range p.cons {
		if len(con.Coeffs) != n0 {
			return nil, fmt.Errorf("%w: constraint %d has %d coefficients, want %d", ErrMalformedProblem, i, len(con.Coeffs), n0)
		}
		row := make([]float64, n0)
		copy(row, con.Coeffs)
		rows = append(rows, Constraint{Coeffs: row, Rel: con.Rel, RHS: con.RHS})
	}

	// Bound rows, in variable order for reproducibility.
	for v := 0; v < n0; v++ {
		if p.lower[v] > 0 {
			row := make([]float64, n0)
			row[v] = 1
			rows = append(rows, Constraint{Coeffs: row, Rel: GE, RHS: p.lower[v]})
		}
		if !math.IsInf(p.upper[v], 1) {
			row := make([]float64, n0)
			row[v] = 1
			rows = append(rows, Constraint{Coeffs: row, Rel: LE, RHS: p.upper[v]})
		}
	}

	// Negative right-hand sides flip the whole row and its relation.
	for i := range rows {
		if rows[i].RHS < 0 {
			for j := range rows[i].Coeffs {
				rows[i].Coeffs[j] = -rows[i].Coeffs[j]
			}
			rows[i].RHS = -rows[i].RHS
			switch rows[i].Rel {
			case LE:
				rows[i].Rel = GE
			case GE:
				rows[i].Rel = LE
			}
		}
	}

	m := len(rows)
	n := n0
	for _, row := range rows {
		if row.Rel != EQ {
			n++
		}
	}

	sf := &StandardForm{
		A:             mat.NewDense(m, n, nil),
		B:             mat.NewDense(m, 1, nil),
		C:             mat.NewDense(1, n, nil),
		NumRows:       m,
		NumCols:       n,
		NumStructural: n0,
		SlackIndexes:  make([]int, m),
		Negated:       p.sense == Minimize,
	}

	for j, c := range p.obj {
		if sf.Negated {
			c = -c
		}
		sf.C.Set(0, j, c)
	}

	next := n0
	for i, row := range rows {
		for j, a := range row.Coeffs {
			sf.A.Set(i, j, a)
		}
		sf.B.Set(i, 0, row.RHS)

		switch row.Rel {
		case LE:
			sf.A.Set(i, next, 1)
			sf.SlackIndexes[i] = next
			next++
		case GE:
			sf.A.Set(i, next, -1)
			sf.SlackIndexes[i] = next
			next++
			sf.ArtificialRows = append(sf.ArtificialRows, i)
		case EQ:
			sf.SlackIndexes[i] = -1
			sf.ArtificialRows = append(sf.ArtificialRows, i)
		}
	}

	return sf, nil
}

// AddColumn appends one variable column to A and its objective coefficient to
// C. The coefficient is given in the problem's original sense and is negated
// here if the form was built from a minimization.
func (sf *StandardForm) AddColumn(col []float64, objCoeff float64) error {
	if len(col) != sf.NumRows {
		return fmt.Errorf("%w: column has %d rows, want %d", ErrDimensionMismatch, len(col), sf.NumRows)
	}

	sf.A = mat.DenseCopyOf(sf.A.Grow(0, 1))
	sf.A.SetCol(sf.NumCols, col)

	if sf.Negated {
		objCoeff = -objCoeff
	}
	sf.C = mat.DenseCopyOf(sf.C.Grow(0, 1))
	sf.C.Set(0, sf.NumCols, objCoeff)

	sf.NumCols++

	return nil
}

// Clone returns a deep copy, so a caller can snapshot the form before a
// structural modification.
func (sf *StandardForm) Clone() *StandardForm {
	cp := *sf
	cp.A = mat.DenseCopyOf(sf.A)
	cp.B = mat.DenseCopyOf(sf.B)
	cp.C = mat.DenseCopyOf(sf.C)
	cp.SlackIndexes = append([]int(nil), sf.SlackIndexes...)
	cp.ArtificialRows = append([]int(nil), sf.ArtificialRows...)

	return &cp
}
