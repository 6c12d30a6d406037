// Package config loads primecluster settings from defaults, a YAML or TOML
// file and environment variables, in that order of precedence, and
// validates the result with struct tags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/primecluster/finder"
	"github.com/katalvlaran/primecluster/logutil"
	"github.com/katalvlaran/primecluster/matchmatrix"
)

var (
	// ErrUnsupportedFormat indicates a config file extension with no registered FileLoader.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	// ErrInvalidConfig indicates a failed validation or a malformed override.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full primecluster configuration.
type Config struct {
	Finder FinderConfig   `yaml:"finder" toml:"finder"`
	Matrix MatrixConfig   `yaml:"matrix" toml:"matrix"`
	Batch  BatchConfig    `yaml:"batch" toml:"batch"`
	Log    logutil.Config `yaml:"log" toml:"log"`

	// LoadedFrom lists the sources applied, lowest precedence first.
	LoadedFrom []string `yaml:"-" toml:"-"`
}

// FinderConfig mirrors finder.Options.
type FinderConfig struct {
	MinClusterSize  int     `yaml:"min-cluster-size" toml:"min-cluster-size" validate:"gte=1"`
	SeedThreshold   float64 `yaml:"seed-threshold" toml:"seed-threshold" validate:"gte=0,lte=1"`
	SeedPolicy      string  `yaml:"seed-policy" toml:"seed-policy" validate:"oneof=per-row-minimum average"`
	GrowThreshold   float64 `yaml:"grow-threshold" toml:"grow-threshold" validate:"gte=0,lte=1"`
	BackUpThreshold float64 `yaml:"backup-threshold" toml:"backup-threshold" validate:"gte=0,lte=1"`
	LookAhead       int     `yaml:"look-ahead" toml:"look-ahead" validate:"gte=0"`
}

// MatrixConfig controls how grid files become matrices.
type MatrixConfig struct {
	// Bitmap selects the roaring-backed matrix instead of the dense one.
	Bitmap        bool `yaml:"bitmap" toml:"bitmap"`
	Reflexive     bool `yaml:"reflexive" toml:"reflexive"`
	CheckSymmetry bool `yaml:"check-symmetry" toml:"check-symmetry"`
}

// BatchConfig sizes the batch worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers" toml:"workers" validate:"gte=1,lte=4096"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Finder: FinderConfig{
			MinClusterSize:  finder.DefaultMinClusterSize,
			SeedThreshold:   finder.DefaultSeedThreshold,
			SeedPolicy:      matchmatrix.PerRowMinimum.String(),
			GrowThreshold:   finder.DefaultGrowThreshold,
			BackUpThreshold: finder.DefaultBackUpThreshold,
			LookAhead:       finder.DefaultLookAhead,
		},
		Batch: BatchConfig{Workers: 4},
		Log:   logutil.DefaultConfig(),
	}
}

var validate = validator.New()

// Validate checks every struct tag and reports all violations at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}

		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}

	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Options converts fc to finder options.
func (fc FinderConfig) Options() ([]finder.Option, error) {
	policy, err := matchmatrix.ParseDensityPolicy(fc.SeedPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return []finder.Option{
		finder.WithMinClusterSize(fc.MinClusterSize),
		finder.WithSeedDensity(fc.SeedThreshold, policy),
		finder.WithGrowThreshold(fc.GrowThreshold),
		finder.WithBackUpThreshold(fc.BackUpThreshold),
		finder.WithLookAhead(fc.LookAhead),
	}, nil
}

// Options converts mc to matrix construction options.
func (mc MatrixConfig) Options() []matchmatrix.Option {
	var opts []matchmatrix.Option
	if mc.Reflexive {
		opts = append(opts, matchmatrix.WithReflexive())
	}
	if mc.CheckSymmetry {
		opts = append(opts, matchmatrix.WithSymmetryCheck())
	}

	return opts
}
