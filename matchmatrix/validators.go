// SPDX-License-Identifier: MIT
// Package: matchmatrix
//
// Purpose:
//   - Single source of truth for the shape, range and threshold guards used
//     by both Dense and Bitmap.
//   - Return sentinels wrapped with a validator tag so call sites stay uniform.

package matchmatrix

import "fmt"

// validatorErrorf tags err with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare ensures rows is an n×n table (n may be 0).
// Complexity: O(n).
func ValidateSquare[T any](rows [][]T) error {
	n := len(rows)
	for i, row := range rows {
		if len(row) != n {
			return validatorErrorf("ValidateSquare", fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), n, ErrNonSquare))
		}
	}

	return nil
}

// ValidatePolicy ensures p is PerRowMinimum or Average.
func ValidatePolicy(p DensityPolicy) error {
	if !p.Valid() {
		return validatorErrorf("ValidatePolicy", fmt.Errorf("%s: %w", p, ErrBadPolicy))
	}

	return nil
}

// ValidateThreshold ensures 0 <= t <= 1.
func ValidateThreshold(t float64) error {
	if !(t >= 0 && t <= 1) { // also rejects NaN
		return validatorErrorf("ValidateThreshold", ErrBadThreshold)
	}

	return nil
}

// validateIndex ensures 0 <= i < n.
func validateIndex(i, n int) error {
	if i < 0 || i >= n {
		return ErrOutOfRange
	}

	return nil
}

// IsSymmetric reports whether m equals its transpose.
// Complexity: O(n²) over the upper triangle.
func IsSymmetric(m Matrix) (bool, error) {
	if m == nil {
		return false, validatorErrorf("IsSymmetric", ErrNilMatrix)
	}
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, err := m.Matches(i, j)
			if err != nil {
				return false, err
			}
			b, err := m.Matches(j, i)
			if err != nil {
				return false, err
			}
			if a != b {
				return false, nil
			}
		}
	}

	return true, nil
}

// symmetricCells checks a raw table; used during construction before any
// Matrix exists.
func symmetricCells(rows [][]bool) bool {
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if rows[i][j] != rows[j][i] {
				return false
			}
		}
	}

	return true
}

// denseBlock is the shared IsDenseBlock kernel. It relies only on
// CountMatches, so every Matrix implementation answers identically.
func denseBlock(m Matrix, rows, cols Range, threshold float64, policy DensityPolicy) (bool, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return false, err
	}
	if err := ValidatePolicy(policy); err != nil {
		return false, err
	}
	n := m.Size()
	if !rows.Within(n) || !cols.Within(n) {
		return false, fmt.Errorf("IsDenseBlock(%s,%s): %w", rows, cols, ErrOutOfRange)
	}

	width := float64(cols.Len())
	total := 0
	for i := rows.Lo; i <= rows.Hi; i++ {
		c, err := m.CountMatches(i, cols)
		if err != nil {
			return false, err
		}
		if policy == PerRowMinimum && float64(c) < threshold*width {
			return false, nil
		}
		total += c
	}
	if policy == Average {
		return float64(total) >= threshold*width*float64(rows.Len()), nil
	}

	return true, nil // PerRowMinimum: every row cleared
}
