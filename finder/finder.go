package finder

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/katalvlaran/primecluster/matchmatrix"
)

// Finder runs the growth-based primary cluster scan over a read-only matrix.
// A Finder holds no scan state; concurrent Clusters/All calls are safe as
// long as the matrix is not mutated.
type Finder struct {
	m    matchmatrix.Matrix
	opts Options
	log  *zap.Logger
}

// New validates opts and returns a Finder over m.
//
// Errors: ErrNilMatrix, ErrInvalidMinSize, ErrInvalidThreshold,
// ErrInvalidPolicy, ErrInvalidLookAhead.
func New(m matchmatrix.Matrix, opts ...Option) (*Finder, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return &Finder{
		m:    m,
		opts: o,
		log:  o.Logger.With(zap.Int("n", m.Size()), zap.Int("k", o.MinClusterSize)),
	}, nil
}

// validate enforces the option invariants.
func (o Options) validate() error {
	if o.MinClusterSize < 1 {
		return fmt.Errorf("MinClusterSize=%d: %w", o.MinClusterSize, ErrInvalidMinSize)
	}
	thresholds := []struct {
		name string
		v    float64
	}{
		{"SeedThreshold", o.SeedThreshold},
		{"GrowThreshold", o.GrowThreshold},
		{"BackUpThreshold", o.BackUpThreshold},
	}
	for _, t := range thresholds {
		if matchmatrix.ValidateThreshold(t.v) != nil {
			return fmt.Errorf("%s=%v: %w", t.name, t.v, ErrInvalidThreshold)
		}
	}
	if !o.SeedPolicy.Valid() {
		return fmt.Errorf("SeedPolicy=%s: %w", o.SeedPolicy, ErrInvalidPolicy)
	}
	if o.LookAhead < 0 {
		return fmt.Errorf("LookAhead=%d: %w", o.LookAhead, ErrInvalidLookAhead)
	}

	return nil
}

// Options returns a copy of the effective options.
func (f *Finder) Options() Options { return f.opts }

// Clusters returns a lazy, forward-only sequence of clusters. Each call
// starts a fresh scan; breaking out of the loop stops the scan. A matrix
// query failure is yielded once as a zero Cluster with a non-nil error and
// ends the sequence.
func (f *Finder) Clusters() iter.Seq2[Cluster, error] {
	return func(yield func(Cluster, error) bool) {
		s := newScanner(f)
		for {
			c, ok, err := s.next()
			if err != nil {
				yield(Cluster{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

// All runs a full scan and returns every cluster. The result is never nil.
func (f *Finder) All() ([]Cluster, error) {
	out := make([]Cluster, 0)
	for c, err := range f.Clusters() {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// Find is shorthand for New(m, opts...) followed by All.
func Find(m matchmatrix.Matrix, opts ...Option) ([]Cluster, error) {
	f, err := New(m, opts...)
	if err != nil {
		return nil, err
	}

	return f.All()
}
