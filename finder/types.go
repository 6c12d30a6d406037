package finder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/primecluster/matchmatrix"
)

// Cluster is an inclusive index range [Start, End] over the matrix ordering.
type Cluster struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns End-Start+1.
func (c Cluster) Len() int { return c.End - c.Start + 1 }

// Contains reports whether o lies within c (equal ranges contain each other).
func (c Cluster) Contains(o Cluster) bool {
	return c.Start <= o.Start && o.End <= c.End
}

// Overlaps reports whether c and o share at least one index.
func (c Cluster) Overlaps(o Cluster) bool {
	return c.Start <= o.End && o.Start <= c.End
}

// Range converts c to a matchmatrix.Range.
func (c Cluster) Range() matchmatrix.Range {
	return matchmatrix.Span(c.Start, c.End)
}

// String renders c as "(start,end)".
func (c Cluster) String() string {
	return fmt.Sprintf("(%d,%d)", c.Start, c.End)
}

// State is a phase of the scan state machine.
type State int

const (
	// Seeking looks for the next dense K×K anchor at or after the cursor.
	Seeking State = iota
	// Growing extends the active range forward.
	Growing
	// BackingUp retracts look-ahead indices past the last directly grown
	// one while they fail support against the rest of the range, then moves
	// the start backward over indices with BackUpThreshold support. The
	// start stays after the start of the last yielded range.
	BackingUp
	// Emitting applies tiny/contained suppression and publishes the range.
	Emitting
	// Resuming moves the cursor into the tail of the last range.
	Resuming
	// Done is terminal.
	Done
)

var stateNames = [...]string{"seeking", "growing", "backing-up", "emitting", "resuming", "done"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Defaults. The thresholds were calibrated against the reference match grids
// kept under testdata/.
const (
	DefaultMinClusterSize  = 3
	DefaultSeedThreshold   = 1.0
	DefaultGrowThreshold   = 0.6
	DefaultBackUpThreshold = 0.55
	DefaultLookAhead       = 3
)

// Option configures a Finder.
type Option func(*Options)

// Options holds Finder parameters.
type Options struct {
	// MinClusterSize is K: seed width and the minimum emitted length.
	MinClusterSize int

	// SeedThreshold and SeedPolicy decide whether a K×K diagonal block is a seed.
	SeedThreshold float64
	SeedPolicy    matchmatrix.DensityPolicy

	// GrowThreshold is the minimum fraction of the current range a candidate
	// index must match to join it.
	GrowThreshold float64

	// BackUpThreshold is the minimum fraction of the finished range an index
	// before the start must match for the start to move back over it.
	BackUpThreshold float64

	// LookAhead bounds how many indices past a weak candidate are probed for
	// renewed density. 0 disables look-ahead.
	LookAhead int

	// Logger receives debug-level state transitions. Defaults to zap.NewNop().
	Logger *zap.Logger
}

// DefaultOptions returns Options with:
//   - MinClusterSize = 3
//   - fully dense seeds, checked per row
//   - GrowThreshold = 0.6, BackUpThreshold = 0.55
//   - LookAhead = 3
//   - a no-op logger
func DefaultOptions() Options {
	return Options{
		MinClusterSize:  DefaultMinClusterSize,
		SeedThreshold:   DefaultSeedThreshold,
		SeedPolicy:      matchmatrix.PerRowMinimum,
		GrowThreshold:   DefaultGrowThreshold,
		BackUpThreshold: DefaultBackUpThreshold,
		LookAhead:       DefaultLookAhead,
		Logger:          zap.NewNop(),
	}
}

// WithMinClusterSize sets K.
func WithMinClusterSize(k int) Option {
	return func(o *Options) {
		o.MinClusterSize = k
	}
}

// WithSeedDensity sets the seed threshold and aggregation policy.
func WithSeedDensity(threshold float64, policy matchmatrix.DensityPolicy) Option {
	return func(o *Options) {
		o.SeedThreshold = threshold
		o.SeedPolicy = policy
	}
}

// WithGrowThreshold sets the growth acceptance fraction.
func WithGrowThreshold(t float64) Option {
	return func(o *Options) {
		o.GrowThreshold = t
	}
}

// WithBackUpThreshold sets the backward-extension acceptance fraction.
func WithBackUpThreshold(t float64) Option {
	return func(o *Options) {
		o.BackUpThreshold = t
	}
}

// WithLookAhead sets the look-ahead bound.
func WithLookAhead(n int) Option {
	return func(o *Options) {
		o.LookAhead = n
	}
}

// WithLogger installs a logger for state tracing. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
