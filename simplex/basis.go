package simplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Basis is the revised-simplex state: the ordered basic column per row, the
// cached inverse of the basis matrix B and the basic solution xᵦ = B⁻¹b.
// All non-basic variables are implicitly at zero. Flat slices indexed by
// row keep the pivot loop free of per-variable allocations.
type Basis struct {
	idx []int         // basic column per row
	inv *mat.Dense    // m×m, B⁻¹
	xb  *mat.VecDense // m, current basic solution
}

// newBasis starts from a basis whose columns form the identity (slack and
// artificial seats), so B⁻¹ = I and xᵦ = b.
func newBasis(idx []int, rhs *mat.VecDense) *Basis {
	m := len(idx)
	b := &Basis{
		idx: append([]int(nil), idx...),
		inv: mat.NewDense(m, m, nil),
		xb:  mat.NewVecDense(m, nil),
	}
	for i := 0; i < m; i++ {
		b.inv.Set(i, i, 1)
	}
	b.xb.CopyVec(rhs)

	return b
}

// Indexes returns a copy of the basic column per row.
func (b *Basis) Indexes() []int {
	return append([]int(nil), b.idx...)
}

// pivot replaces the basic variable at row r with column enter. d must be
// B⁻¹·A_enter with d[r] nonzero. B⁻¹ is updated in place by the elementary
// row operation of the product form: scale row r by 1/d[r], then subtract
// d[i] times the scaled row from every other row. O(m²) versus O(m³) for a
// fresh inversion. xᵦ moves by the step length θ = xᵦ[r]/d[r].
func (b *Basis) pivot(enter, r int, d *mat.VecDense) {
	m := len(b.idx)
	raw := b.inv.RawMatrix()
	pr := d.AtVec(r)

	for k := 0; k < m; k++ {
		raw.Data[r*raw.Stride+k] /= pr
	}
	theta := b.xb.AtVec(r) / pr

	for i := 0; i < m; i++ {
		if i == r {
			continue
		}
		f := d.AtVec(i)
		if f == 0 {
			continue
		}
		for k := 0; k < m; k++ {
			raw.Data[i*raw.Stride+k] -= f * raw.Data[r*raw.Stride+k]
		}
		b.xb.SetVec(i, b.xb.AtVec(i)-theta*f)
	}

	b.xb.SetVec(r, theta)
	b.idx[r] = enter
}

// residual returns ‖B·xᵦ − b‖∞ without materializing B, the drift measure
// that decides when the product-form inverse has degraded.
func (b *Basis) residual(a *mat.Dense, rhs *mat.VecDense) float64 {
	m := len(b.idx)
	var worst float64
	for i := 0; i < m; i++ {
		s := -rhs.AtVec(i)
		for k := 0; k < m; k++ {
			s += a.At(i, b.idx[k]) * b.xb.AtVec(k)
		}
		if r := math.Abs(s); r > worst {
			worst = r
		}
	}

	return worst
}

// refactorize rebuilds B from the constraint matrix columns and recomputes
// B⁻¹ and xᵦ exactly, discarding accumulated product-form error.
func (b *Basis) refactorize(a *mat.Dense, rhs *mat.VecDense) error {
	m := len(b.idx)
	bm := mat.NewDense(m, m, nil)
	for k, j := range b.idx {
		for i := 0; i < m; i++ {
			bm.Set(i, k, a.At(i, j))
		}
	}
	if err := b.inv.Inverse(bm); err != nil {
		return fmt.Errorf("%w: basis matrix is singular: %v", ErrNumericalStall, err)
	}
	b.xb.MulVec(b.inv, rhs)

	return nil
}

func (b *Basis) clone() *Basis {
	return &Basis{
		idx: append([]int(nil), b.idx...),
		inv: mat.DenseCopyOf(b.inv),
		xb:  mat.VecDenseCopyOf(b.xb),
	}
}
