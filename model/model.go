// Package model holds the mutable builder for linear programs and their
// conversion to standard equality form. A Problem is built programmatically
// (variables, then constraints), then frozen into a StandardForm that the
// simplex package consumes.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedProblem is returned for structural input errors: coefficient
// rows of the wrong length, references to undefined variables, or a problem
// with no variables or no constraints.
var ErrMalformedProblem = fmt.Errorf("model: %w", errMalformed)
var errMalformed = errors.New("malformed problem")

// ErrDimensionMismatch is returned when a column or vector does not match
// the dimensions of the standardized problem.
var ErrDimensionMismatch = fmt.Errorf("model: %w", errDimension)
var errDimension = errors.New("dimension mismatch")

// Sense is the optimization direction of a Problem.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}

	return "maximize"
}

// Relation is the comparison of a constraint row against its right-hand side.
type Relation int

const (
	LE Relation = iota // Σ aᵢxᵢ ≤ b
	GE                 // Σ aᵢxᵢ ≥ b
	EQ                 // Σ aᵢxᵢ = b
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Constraint is one dense row of the constraint system.
type Constraint struct {
	Coeffs []float64
	Rel    Relation
	RHS    float64
}

// Problem is a linear program under construction. The zero value is not
// usable; obtain one from NewProblem. Variables are identified by the index
// returned from AddVariable; all are bounded below by zero unless SetBounds
// states otherwise.
type Problem struct {
	sense Sense
	obj   []float64
	lower []float64
	upper []float64
	cons  []Constraint
}

// NewProblem returns an empty problem with the given optimization sense.
func NewProblem(sense Sense) *Problem {
	return &Problem{sense: sense}
}

// AddVariable appends a decision variable with the given objective
// coefficient and returns its index. Bounds default to [0, +Inf).
func (p *Problem) AddVariable(objCoeff float64) int {
	p.obj = append(p.obj, objCoeff)
	p.lower = append(p.lower, 0)
	p.upper = append(p.upper, math.Inf(1))

	return len(p.obj) - 1
}

// SetBounds overrides the bounds of variable v. The lower bound must be
// non-negative; an infinite upper bound (math.Inf(1)) means unbounded above.
// Non-default finite bounds are materialized as extra constraint rows during
// standardization.
func (p *Problem) SetBounds(v int, lower, upper float64) error {
	if v < 0 || v >= len(p.obj) {
		return fmt.Errorf("%w: variable %d does not exist", ErrMalformedProblem, v)
	}
	if lower < 0 || math.IsInf(lower, 0) || math.IsNaN(lower) {
		return fmt.Errorf("%w: lower bound of variable %d must be finite and non-negative, got %g", ErrMalformedProblem, v, lower)
	}
	if upper < lower || math.IsNaN(upper) {
		return fmt.Errorf("%w: upper bound of variable %d below its lower bound", ErrMalformedProblem, v)
	}

	p.lower[v] = lower
	p.upper[v] = upper

	return nil
}

// AddConstraint appends a dense constraint row. The coefficient slice must
// cover every variable added so far; it is copied.
func (p *Problem) AddConstraint(coeffs []float64, rel Relation, rhs float64) error {
	if len(coeffs) != len(p.obj) {
		return fmt.Errorf("%w: constraint has %d coefficients, problem has %d variables", ErrMalformedProblem, len(coeffs), len(p.obj))
	}

	row := make([]float64, len(coeffs))
	copy(row, coeffs)
	p.cons = append(p.cons, Constraint{Coeffs: row, Rel: rel, RHS: rhs})

	return nil
}

// AddSparseConstraint appends a constraint given as parallel column-index and
// value slices. Referencing an undefined variable index is a structural error.
func (p *Problem) AddSparseConstraint(cols []int, vals []float64, rel Relation, rhs float64) error {
	if len(cols) != len(vals) {
		return fmt.Errorf("%w: %d column indexes but %d values", ErrMalformedProblem, len(cols), len(vals))
	}

	row := make([]float64, len(p.obj))
	for i, c := range cols {
		if c < 0 || c >= len(p.obj) {
			return fmt.Errorf("%w: constraint references undefined variable %d", ErrMalformedProblem, c)
		}
		row[c] += vals[i]
	}
	p.cons = append(p.cons, Constraint{Coeffs: row, Rel: rel, RHS: rhs})

	return nil
}

// Sense returns the optimization direction the problem was built with.
func (p *Problem) Sense() Sense { return p.sense }

// NumVariables returns the number of structural (decision) variables.
func (p *Problem) NumVariables() int { return len(p.obj) }

// NumConstraints returns the number of explicit constraint rows, not
// counting rows that standardization derives from variable bounds.
func (p *Problem) NumConstraints() int { return len(p.cons) }
