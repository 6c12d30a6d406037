// SPDX-License-Identifier: MIT

package matchmatrix

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Bitmap is an immutable n×n boolean matrix backed by one roaring bitmap
// per row. Memory tracks the number of matches, not n².
type Bitmap struct {
	n         int
	rows      []*roaring.Bitmap
	symmetric bool
}

var _ Matrix = (*Bitmap)(nil)

// NewBitmap builds a Bitmap from a square [][]bool.
//
// Errors: ErrNonSquare, ErrAsymmetric (with WithSymmetryCheck).
// Complexity: O(n²) scan, O(matches) storage.
func NewBitmap(cells [][]bool, opts ...Option) (*Bitmap, error) {
	if err := ValidateSquare(cells); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	n := len(cells)
	b := &Bitmap{n: n, rows: make([]*roaring.Bitmap, n)}
	for i := 0; i < n; i++ {
		rb := roaring.New()
		for j, v := range cells[i] {
			if v || (o.Reflexive && i == j) {
				rb.Add(uint32(j))
			}
		}
		rb.RunOptimize()
		b.rows[i] = rb
	}

	b.symmetric = b.checkSymmetric()
	if o.CheckSymmetry && !b.symmetric {
		return nil, fmt.Errorf("NewBitmap: %w", ErrAsymmetric)
	}

	return b, nil
}

// ToBitmap copies any Matrix into a Bitmap.
func ToBitmap(m Matrix) (*Bitmap, error) {
	if m == nil {
		return nil, validatorErrorf("ToBitmap", ErrNilMatrix)
	}
	n := m.Size()
	b := &Bitmap{n: n, rows: make([]*roaring.Bitmap, n), symmetric: m.Symmetric()}
	for i := 0; i < n; i++ {
		rb := roaring.New()
		for j := 0; j < n; j++ {
			ok, err := m.Matches(i, j)
			if err != nil {
				return nil, err
			}
			if ok {
				rb.Add(uint32(j))
			}
		}
		rb.RunOptimize()
		b.rows[i] = rb
	}

	return b, nil
}

func (b *Bitmap) checkSymmetric() bool {
	for i, rb := range b.rows {
		it := rb.Iterator()
		for it.HasNext() {
			j := it.Next()
			if !b.rows[j].Contains(uint32(i)) {
				return false
			}
		}
	}

	return true
}

// Size returns n.
func (b *Bitmap) Size() int { return b.n }

// Symmetric reports whether the matrix equals its transpose.
func (b *Bitmap) Symmetric() bool { return b.symmetric }

// Matches reports M[i][j].
func (b *Bitmap) Matches(i, j int) (bool, error) {
	if validateIndex(i, b.n) != nil || validateIndex(j, b.n) != nil {
		return false, fmt.Errorf("Bitmap.Matches(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return b.rows[i].Contains(uint32(j)), nil
}

// CountMatches counts set bits of row i within cols (clipped) as
// Rank(hi) - Rank(lo-1).
func (b *Bitmap) CountMatches(i int, cols Range) (int, error) {
	if err := validateIndex(i, b.n); err != nil {
		return 0, fmt.Errorf("Bitmap.CountMatches(%d,%d): %w", i, cols.Lo, err)
	}
	c := cols.Clip(b.n)
	if c.Len() == 0 {
		return 0, nil
	}
	rb := b.rows[i]
	count := rb.Rank(uint32(c.Hi))
	if c.Lo > 0 {
		count -= rb.Rank(uint32(c.Lo - 1))
	}

	return int(count), nil
}

// CountColumnMatches counts rows r in rows (clipped) whose bitmap holds j.
func (b *Bitmap) CountColumnMatches(j int, rows Range) (int, error) {
	if err := validateIndex(j, b.n); err != nil {
		return 0, fmt.Errorf("Bitmap.CountColumnMatches(%d,%d): %w", rows.Lo, j, err)
	}
	r := rows.Clip(b.n)
	count := 0
	for i := r.Lo; i <= r.Hi; i++ {
		if b.rows[i].Contains(uint32(j)) {
			count++
		}
	}

	return count, nil
}

// IsDenseBlock reports whether rows×cols meets threshold under policy.
func (b *Bitmap) IsDenseBlock(rows, cols Range, threshold float64, policy DensityPolicy) (bool, error) {
	return denseBlock(b, rows, cols, threshold, policy)
}

// Cardinality returns the total number of true cells.
func (b *Bitmap) Cardinality() uint64 {
	var total uint64
	for _, rb := range b.rows {
		total += rb.GetCardinality()
	}

	return total
}
