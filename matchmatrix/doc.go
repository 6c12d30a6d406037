// SPDX-License-Identifier: MIT

// Package matchmatrix provides the read-only query surface over an n×n
// boolean "entity i matches entity j" table.
//
// What:
//
//   - Matrix is the windowed query interface consumed by the cluster finder:
//     raw cell lookups, row/column match counts over an inclusive index
//     range, and K×K style block density checks.
//   - Dense stores cells row-major with per-row prefix sums, so every
//     CountMatches call is O(1).
//   - Bitmap stores one roaring bitmap per row; CountMatches is answered with
//     two Rank calls, which keeps large sparse inputs compact.
//   - ParseGrid reads the plain-text grid format ('#'/'1' = match,
//     '.'/'0' = no match, one row per line).
//
// Why:
//
//   - Growth and back-up decisions are density ratios over windows; asking
//     for aggregate evidence instead of poking individual cells keeps those
//     rules simple threshold comparisons.
//
// Complexity:
//
//   - Dense construction: O(n²) time, O(n²) memory.
//   - Dense.CountMatches: O(1). Dense.CountColumnMatches: O(len).
//   - Bitmap.CountMatches: O(log c) per Rank (c = container count).
//   - IsDenseBlock: O(rows) on either implementation.
//
// Options:
//
//   - WithSymmetryCheck: reject asymmetric input with ErrAsymmetric.
//   - WithReflexive: force every diagonal cell to true.
//
// Errors:
//
//   - ErrOutOfRange: a row/column index or a block range lies outside [0,n).
//   - ErrNonSquare: ragged or non-square input.
//   - ErrAsymmetric: WithSymmetryCheck found M[i][j] != M[j][i].
//   - ErrBadThreshold: density threshold outside [0,1].
//   - ErrBadCell: a grid line contains an unknown cell character.
//   - ErrNilMatrix: nil Matrix handed to a helper.
//
// Matrices are immutable once built and safe for concurrent readers.
package matchmatrix
