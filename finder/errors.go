package finder

import "errors"

var (
	// ErrNilMatrix indicates New was given a nil matrix.
	ErrNilMatrix = errors.New("finder: matrix is nil")
	// ErrInvalidMinSize indicates MinClusterSize < 1.
	ErrInvalidMinSize = errors.New("finder: minimum cluster size must be >= 1")
	// ErrInvalidThreshold indicates a seed, growth or back-up threshold outside [0,1].
	ErrInvalidThreshold = errors.New("finder: threshold must be within [0,1]")
	// ErrInvalidPolicy indicates a seed density policy other than
	// PerRowMinimum or Average.
	ErrInvalidPolicy = errors.New("finder: unknown seed density policy")
	// ErrInvalidLookAhead indicates a negative look-ahead bound.
	ErrInvalidLookAhead = errors.New("finder: look-ahead must be >= 0")
)
