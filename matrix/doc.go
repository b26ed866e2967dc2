// Package matrix provides the dense, column-major matrix type shared by the
// spatial kernels.
//
// Coordinates are stored as n x d matrices (column = spatial dimension) and
// feature data as features x n matrices (column = point), so a point's feature
// vector is a contiguous slice:
//
//	x, _ := matrix.FromColumns([][]float64{{1, 2}, {3, 4}, {5, 6}}) // 2 features, 3 points
//	v := x.Col(1)                                                     // [3 4]
//
// Element types are constrained by Real so integer and floating-point inputs
// share one implementation.
package matrix
