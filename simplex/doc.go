// Package simplex implements the primal revised simplex method for linear
// programs in the standard equality form produced by the model package.
//
// The engine keeps the basis as an index set plus a cached dense inverse
// B⁻¹, prices reduced costs through the dual vector cᵦᵗB⁻¹ instead of
// rebuilding a tableau, and updates B⁻¹ after each pivot with the
// product-form elementary row operation (O(m²) per pivot). Problems without
// an obvious feasible basis go through Phase I on artificial variables.
//
// Pivot selection uses Bland's lowest-index rule by default, which both
// guarantees termination and makes pivot sequences reproducible; Dantzig's
// most-negative rule is available through WithPivotRule and falls back to
// Bland's after a run of degenerate pivots.
//
// A successful Solve returns a Solved state that retains the final basis.
// Offering a new variable to it with AddColumn prices the candidate column
// against the existing B⁻¹ in O(m) and, when beneficial, resumes pivoting
// from the optimal basis instead of re-solving from scratch.
//
// Infeasible and unbounded problems are ordinary results carrying their
// certificates, not errors. A solve is a single-threaded deterministic
// computation; concurrent calls against one Solved must be serialized by the
// caller, or given their own Clone.
package simplex
