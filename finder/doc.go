// Package finder detects primary clusters: contiguous runs of an ordered
// entity list whose members predominantly match each other.
//
// What:
//
//   - Finder scans a matchmatrix.Matrix once, left to right, and yields
//     inclusive index ranges (Cluster{Start, End}).
//   - The scan is an explicit state machine:
//     Seeking → Growing → BackingUp → Emitting → Resuming → Seeking … → Done.
//   - Seeking: smallest s ≥ pos whose K×K diagonal block is dense
//     (a 2×2 overlap at a boundary cannot anchor a cluster).
//   - Growing: index end+1 joins when its support against the current range
//     reaches GrowThreshold; on a miss up to LookAhead further indices are
//     probed and a renewal absorbs the weak indices in between.
//   - BackingUp: trailing indices admitted only through look-ahead are
//     trimmed if they do not hold up against the retained range; then the
//     start backs up over indices (possibly inside the previous cluster)
//     that support the finished range at BackUpThreshold.
//   - Emitting: ranges shorter than K or contained in the previous range are
//     dropped; a range that contains the previous one replaces it.
//   - Resuming: the cursor restarts at end-K+2 so chained clusters in
//     endogamous regions are still found.
//
// Why:
//
//   - Reduces an O(n²) match matrix to a handful of candidate groups before
//     any hierarchical clustering runs.
//
// Complexity:
//
//   - Time: O(n·K) seeking plus O(n·L) growth probes per cluster with O(1)
//     row counts (L = LookAhead); Memory: O(1) beyond the output.
//
// Options:
//
//   - MinClusterSize (K, default 3), SeedThreshold/SeedPolicy (1.0, per-row),
//     GrowThreshold (0.6), BackUpThreshold (0.55), LookAhead (3), Logger.
//
// Errors:
//
//   - ErrNilMatrix, ErrInvalidMinSize, ErrInvalidThreshold, ErrInvalidLookAhead
//     from New; matrix query errors surface through Clusters/All.
//
// Output guarantees: every range has length ≥ K, starts and ends are strictly
// increasing, no range is a sub-range of another, and identical inputs give
// identical output. K > n yields no clusters.
package finder
