// SPDX-License-Identifier: MIT
// Package matchmatrix: sentinel error set.
// Every message is prefixed with "matchmatrix: ..." so it greps cleanly in
// logs. Call sites wrap with fmt.Errorf("ctx: %w", ErrX); callers match
// with errors.Is.

package matchmatrix

import "errors"

var (
	// ErrOutOfRange indicates a row/column index or block range outside [0,n).
	ErrOutOfRange = errors.New("matchmatrix: index out of range")

	// ErrNonSquare indicates ragged input or a row count that differs from
	// the column count.
	ErrNonSquare = errors.New("matchmatrix: matrix is not square")

	// ErrAsymmetric is returned by WithSymmetryCheck when M[i][j] != M[j][i].
	ErrAsymmetric = errors.New("matchmatrix: matrix is not symmetric")

	// ErrBadThreshold indicates a density threshold outside [0,1].
	ErrBadThreshold = errors.New("matchmatrix: density threshold must be within [0,1]")

	// ErrBadPolicy indicates an unknown density policy name or value.
	ErrBadPolicy = errors.New("matchmatrix: unknown density policy")

	// ErrBadCell indicates an unrecognized character in a text grid.
	ErrBadCell = errors.New("matchmatrix: unrecognized grid cell")

	// ErrNilMatrix indicates a nil Matrix argument.
	ErrNilMatrix = errors.New("matchmatrix: nil matrix")
)
