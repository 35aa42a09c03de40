package simplex

import (
	"errors"
	"fmt"
)

// ErrNumericalStall is returned when the iteration cap is exceeded or a
// refactorization cannot bring the basis residual back under tolerance. The
// solve is abandoned rather than reporting a possibly wrong optimum.
var ErrNumericalStall = fmt.Errorf("simplex: %w", errStall)
var errStall = errors.New("numerical stall")

// ErrInvalidState is returned when an operation requires an optimally solved
// state, e.g. AddColumn on an infeasible result.
var ErrInvalidState = fmt.Errorf("simplex: %w", errInvalidState)
var errInvalidState = errors.New("not in optimal state")

// ErrDimensionMismatch is returned when a candidate column does not have one
// entry per constraint row.
var ErrDimensionMismatch = fmt.Errorf("simplex: %w", errDimension)
var errDimension = errors.New("dimension mismatch")
