// SPDX-License-Identifier: MIT

package matchmatrix

import "fmt"

// Range is an inclusive index window [Lo, Hi]. A Range with Hi < Lo is empty.
type Range struct {
	Lo, Hi int
}

// Span returns the inclusive range [lo, hi].
func Span(lo, hi int) Range {
	return Range{Lo: lo, Hi: hi}
}

// Len returns the number of indices covered by r (0 when inverted).
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}

	return r.Hi - r.Lo + 1
}

// Clip intersects r with [0, n).
func (r Range) Clip(n int) Range {
	if r.Lo < 0 {
		r.Lo = 0
	}
	if r.Hi > n-1 {
		r.Hi = n - 1
	}

	return r
}

// Within reports whether r is non-empty and lies entirely inside [0, n).
func (r Range) Within(n int) bool {
	return r.Lo >= 0 && r.Hi < n && r.Lo <= r.Hi
}

// String renders r as "[lo..hi]".
func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]", r.Lo, r.Hi)
}

// DensityPolicy selects how IsDenseBlock aggregates per-row fractions.
type DensityPolicy int

const (
	// PerRowMinimum requires every row of the block to clear the threshold.
	PerRowMinimum DensityPolicy = iota
	// Average requires only the block-wide fraction to clear the threshold.
	Average
)

// String returns the policy name.
func (p DensityPolicy) String() string {
	switch p {
	case PerRowMinimum:
		return "per-row-minimum"
	case Average:
		return "average"
	default:
		return fmt.Sprintf("DensityPolicy(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared policies.
func (p DensityPolicy) Valid() bool {
	return p == PerRowMinimum || p == Average
}

// ParseDensityPolicy is the inverse of DensityPolicy.String.
func ParseDensityPolicy(s string) (DensityPolicy, error) {
	switch s {
	case "per-row-minimum":
		return PerRowMinimum, nil
	case "average":
		return Average, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrBadPolicy)
	}
}

// Matrix is the read-only windowed query surface over an n×n boolean table.
// Implementations must be immutable after construction.
type Matrix interface {
	// Size returns n.
	Size() int

	// Matches reports M[i][j]. Out-of-range indices return ErrOutOfRange.
	Matches(i, j int) (bool, error)

	// CountMatches counts true cells in row i over cols, clipped to [0,n).
	CountMatches(i int, cols Range) (int, error)

	// CountColumnMatches counts true cells in column j over rows, clipped to [0,n).
	CountColumnMatches(j int, rows Range) (int, error)

	// IsDenseBlock reports whether the block rows×cols meets threshold
	// under policy. Both ranges must lie fully inside the matrix.
	IsDenseBlock(rows, cols Range, threshold float64, policy DensityPolicy) (bool, error)

	// Symmetric reports whether M[i][j] == M[j][i] for all i, j.
	Symmetric() bool
}
