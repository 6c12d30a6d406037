// SPDX-License-Identifier: MIT

// Package matchmatrix: functional configuration for matrix construction.
// Defaults keep ingestion permissive: no symmetry enforcement and the
// diagonal taken as given.

package matchmatrix

const (
	// DefaultCheckSymmetry leaves asymmetric input untouched.
	DefaultCheckSymmetry = false

	// DefaultReflexive keeps the diagonal exactly as supplied.
	DefaultReflexive = false
)

// Option configures matrix construction.
type Option func(*Options)

// Options holds construction-time switches. Use the WithX helpers.
type Options struct {
	// CheckSymmetry rejects input where M[i][j] != M[j][i].
	CheckSymmetry bool

	// Reflexive forces M[i][i] = true (every entity matches itself).
	Reflexive bool
}

// DefaultOptions returns Options with documented defaults.
func DefaultOptions() Options {
	return Options{
		CheckSymmetry: DefaultCheckSymmetry,
		Reflexive:     DefaultReflexive,
	}
}

// WithSymmetryCheck makes constructors fail with ErrAsymmetric on asymmetric input.
func WithSymmetryCheck() Option {
	return func(o *Options) {
		o.CheckSymmetry = true
	}
}

// WithReflexive sets every diagonal cell to true during construction.
func WithReflexive() Option {
	return func(o *Options) {
		o.Reflexive = true
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
