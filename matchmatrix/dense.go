// SPDX-License-Identifier: MIT

// Package matchmatrix - Dense storage (row-major) with per-row prefix sums.
//
// Purpose:
//   - Cache-friendly row-major cells with the index formula i*n + j.
//   - Per-row prefix sums so a windowed row count is two lookups.
//   - Safety at the public surface: lookups return errors instead of panicking.
//
// Complexity quicksheet:
//   - FromBools/FromInts: O(n²); Matches: O(1); CountMatches: O(1);
//     CountColumnMatches: O(len(rows)).

package matchmatrix

import (
	"fmt"
	"strings"
)

// method tags used in error wrappers
const (
	ctxMatches  = "Matches"
	ctxCount    = "CountMatches"
	ctxColCount = "CountColumnMatches"
)

// denseErrorf wraps err with a uniform Dense context and callsite indices.
func denseErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, i, j, err)
}

// Dense is an immutable n×n boolean matrix.
//   - cells is row-major, len n*n.
//   - prefix is row-major, len n*(n+1); prefix[i*(n+1)+j] counts true cells
//     in row i over columns [0, j).
type Dense struct {
	n         int
	cells     []bool
	prefix    []int32
	symmetric bool
}

var _ Matrix = (*Dense)(nil)

// FromBools builds a Dense from a square [][]bool. The input is deep-copied.
//
// Errors: ErrNonSquare, ErrAsymmetric (with WithSymmetryCheck).
// Complexity: O(n²).
func FromBools(rows [][]bool, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(rows); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	n := len(rows)
	cp := make([][]bool, n)
	for i := range rows {
		cp[i] = make([]bool, n)
		copy(cp[i], rows[i])
		if o.Reflexive {
			cp[i][i] = true
		}
	}

	sym := symmetricCells(cp)
	if o.CheckSymmetry && !sym {
		return nil, fmt.Errorf("FromBools: %w", ErrAsymmetric)
	}

	return build(cp, sym), nil
}

// FromInts builds a Dense from a square [][]int; any non-zero cell is a match.
func FromInts(rows [][]int, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(rows); err != nil {
		return nil, err
	}
	b := make([][]bool, len(rows))
	for i, row := range rows {
		b[i] = make([]bool, len(row))
		for j, v := range row {
			b[i][j] = v != 0
		}
	}

	return FromBools(b, opts...)
}

// build flattens validated rows and computes the prefix sums.
func build(rows [][]bool, symmetric bool) *Dense {
	n := len(rows)
	d := &Dense{
		n:         n,
		cells:     make([]bool, n*n),
		prefix:    make([]int32, n*(n+1)),
		symmetric: symmetric,
	}
	for i := 0; i < n; i++ {
		base := i * (n + 1)
		for j := 0; j < n; j++ {
			v := rows[i][j]
			d.cells[i*n+j] = v
			d.prefix[base+j+1] = d.prefix[base+j]
			if v {
				d.prefix[base+j+1]++
			}
		}
	}

	return d
}

// Size returns n.
func (d *Dense) Size() int { return d.n }

// Symmetric reports whether the matrix equals its transpose.
func (d *Dense) Symmetric() bool { return d.symmetric }

// Matches reports M[i][j].
func (d *Dense) Matches(i, j int) (bool, error) {
	if validateIndex(i, d.n) != nil || validateIndex(j, d.n) != nil {
		return false, denseErrorf(ctxMatches, i, j, ErrOutOfRange)
	}

	return d.cells[i*d.n+j], nil
}

// CountMatches counts true cells of row i within cols (clipped to [0,n)).
// Complexity: O(1).
func (d *Dense) CountMatches(i int, cols Range) (int, error) {
	if err := validateIndex(i, d.n); err != nil {
		return 0, denseErrorf(ctxCount, i, cols.Lo, err)
	}
	c := cols.Clip(d.n)
	if c.Len() == 0 {
		return 0, nil
	}
	base := i * (d.n + 1)

	return int(d.prefix[base+c.Hi+1] - d.prefix[base+c.Lo]), nil
}

// CountColumnMatches counts true cells of column j within rows (clipped).
// Complexity: O(len(rows)).
func (d *Dense) CountColumnMatches(j int, rows Range) (int, error) {
	if err := validateIndex(j, d.n); err != nil {
		return 0, denseErrorf(ctxColCount, rows.Lo, j, err)
	}
	r := rows.Clip(d.n)
	count := 0
	for i := r.Lo; i <= r.Hi; i++ {
		if d.cells[i*d.n+j] {
			count++
		}
	}

	return count, nil
}

// IsDenseBlock reports whether rows×cols meets threshold under policy.
func (d *Dense) IsDenseBlock(rows, cols Range, threshold float64, policy DensityPolicy) (bool, error) {
	return denseBlock(d, rows, cols, threshold, policy)
}

// String renders the matrix in the grid text format accepted by ParseGrid.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if d.cells[i*d.n+j] {
				sb.WriteByte(cellMatch)
			} else {
				sb.WriteByte(cellNoMatch)
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
