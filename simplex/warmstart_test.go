package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"q.log/lp/model"
)

func TestReducedCostAgainstOptimalBasis(t *testing.T) {
	sol := mustSolve(t, wardPlanning(t))

	// worked fixture: a third service line with c₃=400 and column (0,1)
	rc, err := sol.ReducedCost([]float64{0, 1}, 400)
	require.NoError(t, err)
	assert.InDelta(t, -300, rc, 1e-9)

	// a column priced with the duals (0, 100): 100·1 − 50 = 50
	rc, err = sol.ReducedCost([]float64{1, 1}, 50)
	require.NoError(t, err)
	assert.InDelta(t, 50, rc, 1e-9)
}

func TestReducedCostDimensionMismatch(t *testing.T) {
	sol := mustSolve(t, wardPlanning(t))

	_, err := sol.ReducedCost([]float64{1, 2, 3}, 10)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = sol.AddColumn([]float64{1}, 10)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAddColumnBeneficial(t *testing.T) {
	l := &recordLogger{}
	solLogged := mustSolve(t, wardPlanning(t), WithLogger(l))
	pivotsBefore := len(l.lines)

	rep, err := solLogged.AddColumn([]float64{0, 1}, 400)
	require.NoError(t, err)

	assert.True(t, rep.Beneficial)
	assert.InDelta(t, -300, rep.ReducedCost, 1e-9)
	// two incremental pivots instead of a cold four-pivot solve
	assert.Equal(t, 2, rep.Pivots)
	assert.Equal(t, pivotsBefore+2, len(l.lines))

	require.NotNil(t, rep.Result)
	assert.Equal(t, Optimal, rep.Result.Status)
	assert.InDelta(t, 2400, rep.Result.Objective, 1e-9)

	// the solved state was re-optimized in place; the new variable is the
	// last standard-form column
	assert.InDelta(t, 2400, solLogged.Objective, 1e-9)
	sf := solLogged.StandardForm()
	assert.Equal(t, 5, sf.NumCols)
	assert.True(t, floats.EqualApprox([]float64{0, 0, 4, 0, 6}, solLogged.X, 1e-9))
	checkFeasible(t, sf, solLogged.X)

	// first pivot of the resumed run drives the new column in and x₂ out
	assert.Contains(t, l.lines[pivotsBefore], "enter 4")
	assert.Contains(t, l.lines[pivotsBefore], "leave 1")
}

// The warm-started optimum must coincide with a cold solve of the augmented
// problem, with fewer pivots.
func TestWarmStartMatchesColdSolve(t *testing.T) {
	warm := mustSolve(t, wardPlanning(t))
	rep, err := warm.AddColumn([]float64{0, 1}, 400)
	require.NoError(t, err)
	require.True(t, rep.Beneficial)

	p := model.NewProblem(model.Maximize)
	p.AddVariable(100)
	p.AddVariable(200)
	p.AddVariable(400)
	require.NoError(t, p.AddConstraint([]float64{1, 1, 0}, model.LE, 4))
	require.NoError(t, p.AddConstraint([]float64{1, 2, 1}, model.LE, 6))
	sf, err := p.Standardize()
	require.NoError(t, err)
	cold := mustSolve(t, sf)

	assert.InDelta(t, cold.Objective, warm.Objective, 1e-9)
	// structural values agree; the appended column sits after the slacks in
	// the warm form but third in the cold form
	assert.InDelta(t, cold.X[0], warm.X[0], 1e-9)
	assert.InDelta(t, cold.X[1], warm.X[1], 1e-9)
	assert.InDelta(t, cold.X[2], warm.X[4], 1e-9)
	assert.Less(t, rep.Pivots, cold.Pivots)
}

func TestAddColumnNotBeneficial(t *testing.T) {
	sol := mustSolve(t, wardPlanning(t))

	rep, err := sol.AddColumn([]float64{1, 1}, 50)
	require.NoError(t, err)

	assert.False(t, rep.Beneficial)
	assert.InDelta(t, 50, rep.ReducedCost, 1e-9)
	assert.Zero(t, rep.Pivots)
	assert.Nil(t, rep.Result)

	// nothing was touched
	assert.InDelta(t, 600, sol.Objective, 1e-9)
	assert.Equal(t, 4, sol.StandardForm().NumCols)
	assert.True(t, floats.EqualApprox([]float64{2, 2, 0, 0}, sol.X, 1e-9))
}

func TestAddColumnInvalidState(t *testing.T) {
	p := model.NewProblem(model.Maximize)
	p.AddVariable(1)
	require.NoError(t, p.AddConstraint([]float64{1}, model.GE, 5))
	require.NoError(t, p.AddConstraint([]float64{1}, model.LE, 2))
	sf, err := p.Standardize()
	require.NoError(t, err)

	sol := mustSolve(t, sf)
	require.Equal(t, Infeasible, sol.Status)

	_, err = sol.AddColumn([]float64{1, 1}, 10)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = sol.ReducedCost([]float64{1, 1}, 10)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAddColumnMinimize(t *testing.T) {
	p := model.NewProblem(model.Minimize)
	p.AddVariable(1)
	require.NoError(t, p.AddConstraint([]float64{1}, model.GE, 2))
	sf, err := p.Standardize()
	require.NoError(t, err)

	sol := mustSolve(t, sf)
	require.Equal(t, Optimal, sol.Status)
	require.InDelta(t, 2, sol.Objective, 1e-9)

	// a cheaper way to cover the demand row
	rep, err := sol.AddColumn([]float64{1}, 0.5)
	require.NoError(t, err)

	assert.True(t, rep.Beneficial)
	assert.Equal(t, 1, rep.Pivots)
	assert.InDelta(t, 1, sol.Objective, 1e-9)
	assert.InDelta(t, 0, sol.X[0], 1e-9)
	assert.InDelta(t, 2, sol.X[2], 1e-9)
}

func TestCloneIsolatesWarmStart(t *testing.T) {
	sol := mustSolve(t, wardPlanning(t))
	cp := sol.Clone()

	rep, err := cp.AddColumn([]float64{0, 1}, 400)
	require.NoError(t, err)
	require.True(t, rep.Beneficial)

	assert.InDelta(t, 2400, cp.Objective, 1e-9)
	assert.Equal(t, 5, cp.StandardForm().NumCols)

	// the original keeps its basis, result and dimensions
	assert.InDelta(t, 600, sol.Objective, 1e-9)
	assert.Equal(t, 4, sol.StandardForm().NumCols)
	assert.True(t, floats.EqualApprox([]float64{2, 2, 0, 0}, sol.X, 1e-9))

	rc, err := sol.ReducedCost([]float64{0, 1}, 400)
	require.NoError(t, err)
	assert.InDelta(t, -300, rc, 1e-9)
}

func TestAddColumnRepeated(t *testing.T) {
	sol := mustSolve(t, wardPlanning(t))

	rep, err := sol.AddColumn([]float64{0, 1}, 400)
	require.NoError(t, err)
	require.True(t, rep.Beneficial)
	require.InDelta(t, 2400, sol.Objective, 1e-9)

	// the same column offered again prices non-negative at the new optimum
	rep, err = sol.AddColumn([]float64{0, 1}, 400)
	require.NoError(t, err)
	assert.False(t, rep.Beneficial)
	assert.GreaterOrEqual(t, rep.ReducedCost, 0.0)

	// a yet better column keeps the incremental path going
	rep, err = sol.AddColumn([]float64{0, 1}, 500)
	require.NoError(t, err)
	assert.True(t, rep.Beneficial)
	assert.InDelta(t, 3000, sol.Objective, 1e-9)
}
