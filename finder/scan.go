package finder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/primecluster/matchmatrix"
)

// scanner carries the mutable state of one left-to-right pass.
//
// Emission runs one range behind: the newest finished range stays pending
// until the next one shows it is not contained in it, so replacement never
// has to retract a range that was already yielded.
type scanner struct {
	m         matchmatrix.Matrix
	opts      Options
	log       *zap.Logger
	n, k      int
	symmetric bool

	state State
	pos   int // cursor for Seeking
	seed  int // start of the current K×K anchor
	cur   Cluster
	solid int // last index admitted by direct growth

	pending    Cluster
	hasPending bool
	yielded    Cluster
	hasYielded bool
}

func newScanner(f *Finder) *scanner {
	return &scanner{
		m:         f.m,
		opts:      f.opts,
		log:       f.log,
		n:         f.m.Size(),
		k:         f.opts.MinClusterSize,
		symmetric: f.m.Symmetric(),
		state:     Seeking,
	}
}

// next drives the state machine until a range is ready to be yielded or the
// scan ends. ok is false once the sequence is exhausted.
func (s *scanner) next() (c Cluster, ok bool, err error) {
	for {
		switch s.state {
		case Seeking:
			err = s.seek()
		case Growing:
			err = s.grow()
		case BackingUp:
			err = s.backUp()
		case Emitting:
			if c, ok = s.emit(); ok {
				return c, true, nil
			}
		case Resuming:
			s.resume()
		case Done:
			if s.hasPending {
				s.hasPending = false
				return s.pending, true, nil
			}
			return Cluster{}, false, nil
		}
		if err != nil {
			s.state = Done
			s.hasPending = false
			return Cluster{}, false, err
		}
	}
}

// transition records and traces a state change.
func (s *scanner) transition(to State) {
	if ce := s.log.Check(zap.DebugLevel, "state transition"); ce != nil {
		ce.Write(
			zap.Stringer("from", s.state),
			zap.Stringer("to", to),
			zap.Int("pos", s.pos),
			zap.Stringer("range", s.cur),
		)
	}
	s.state = to
}

//----------------------------------------------------------------------------//
// Seeking
//----------------------------------------------------------------------------//

// seek finds the smallest s ≥ pos whose K×K diagonal block is a seed.
func (s *scanner) seek() error {
	for c := s.pos; c <= s.n-s.k; c++ {
		block := matchmatrix.Span(c, c+s.k-1)
		dense, err := s.m.IsDenseBlock(block, block, s.opts.SeedThreshold, s.opts.SeedPolicy)
		if err != nil {
			return err
		}
		if dense {
			s.seed = c
			s.cur = Cluster{Start: c, End: c + s.k - 1}
			s.solid = s.cur.End
			s.transition(Growing)
			return nil
		}
	}
	s.transition(Done)

	return nil
}

//----------------------------------------------------------------------------//
// Growing
//----------------------------------------------------------------------------//

// grow performs one growth step: a direct extension by end+1, or a
// look-ahead jump over weak indices to the first renewed one. When neither
// applies the range moves on to BackingUp.
func (s *scanner) grow() error {
	next := s.cur.End + 1
	if next >= s.n {
		s.transition(BackingUp)
		return nil
	}
	win := s.cur.Range()

	ok, err := s.supports(next, win, s.opts.GrowThreshold)
	if err != nil {
		return err
	}
	if ok {
		s.cur.End = next
		s.solid = next
		return nil
	}

	last := next + s.opts.LookAhead
	if last > s.n-1 {
		last = s.n - 1
	}
	for j := next + 1; j <= last; j++ {
		ok, err = s.supports(j, win, s.opts.GrowThreshold)
		if err != nil {
			return err
		}
		if ok {
			s.log.Debug("look-ahead renewal", zap.Int("weak", next), zap.Int("renewed", j))
			s.cur.End = j
			return nil
		}
	}
	s.transition(BackingUp)

	return nil
}

//----------------------------------------------------------------------------//
// BackingUp
//----------------------------------------------------------------------------//

// backUp trims look-ahead-only tail indices that fail against the retained
// range, then moves the start back over indices that support the range.
// The start never reaches the start of the last yielded range.
func (s *scanner) backUp() error {
	for s.cur.End > s.solid {
		ok, err := s.supports(s.cur.End, matchmatrix.Span(s.cur.Start, s.cur.End-1), s.opts.GrowThreshold)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		s.cur.End--
	}

	floor := 0
	if s.hasYielded {
		floor = s.yielded.Start + 1
	}
	for s.cur.Start > floor {
		ok, err := s.supports(s.cur.Start-1, s.cur.Range(), s.opts.BackUpThreshold)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		s.cur.Start--
	}
	s.transition(Emitting)

	return nil
}

//----------------------------------------------------------------------------//
// Emitting / Resuming
//----------------------------------------------------------------------------//

// emit applies suppression and replacement. It returns the previously
// pending range when that range is now final.
func (s *scanner) emit() (Cluster, bool) {
	defer s.transition(Resuming)

	c := s.cur
	switch {
	case c.Len() < s.k:
		s.log.Debug("tiny cluster suppressed", zap.Stringer("range", c))
		return Cluster{}, false
	case s.hasPending && s.pending.Contains(c):
		s.log.Debug("contained cluster suppressed", zap.Stringer("range", c), zap.Stringer("previous", s.pending))
		return Cluster{}, false
	case s.hasPending && c.Contains(s.pending):
		s.log.Debug("cluster replaced", zap.Stringer("range", c), zap.Stringer("previous", s.pending))
		s.pending = c
		return Cluster{}, false
	}

	prev, had := s.pending, s.hasPending
	s.pending, s.hasPending = c, true
	if !had {
		return Cluster{}, false
	}
	s.yielded, s.hasYielded = prev, true

	return prev, true
}

// resume restarts seeking inside the tail of the range just processed.
func (s *scanner) resume() {
	pos := s.cur.End - s.k + 2
	if pos <= s.seed {
		pos = s.seed + 1
	}
	s.pos = pos
	s.transition(Seeking)
}

//----------------------------------------------------------------------------//
// density helpers
//----------------------------------------------------------------------------//

// supports reports whether index i matches at least threshold of win. For
// asymmetric matrices the weaker of the row and column counts is used.
func (s *scanner) supports(i int, win matchmatrix.Range, threshold float64) (bool, error) {
	count, err := s.m.CountMatches(i, win)
	if err != nil {
		return false, err
	}
	if !s.symmetric {
		col, err := s.m.CountColumnMatches(i, win)
		if err != nil {
			return false, err
		}
		count = min(count, col)
	}

	return float64(count) >= threshold*float64(win.Len()), nil
}
