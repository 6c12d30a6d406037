// Package logutil builds the zap loggers used across primecluster and holds
// the process-wide logger.
//
// A Config selects level, encoder (console or json) and sink: stderr, or a
// lumberjack-rotated file when Filename is set. The package-level logger
// defaults to a no-op logger until SetLogger is called.
package logutil

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Supported encoder formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// consoleTimeLayout renders like: 2026/01/02 15:04:05.000000 +0000
const consoleTimeLayout = "2006/01/02 15:04:05.000000 -0700"

var (
	// ErrUnsupportedFormat indicates a Format other than console or json.
	ErrUnsupportedFormat = errors.New("logutil: unsupported log format")
	// ErrInvalidLevel indicates a Level zap cannot parse.
	ErrInvalidLevel = errors.New("logutil: invalid log level")
)

// Config describes a logger. Zero MaxSize/MaxDays/MaxBackups keep the
// lumberjack defaults.
type Config struct {
	Level      string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	Format     string `yaml:"format" toml:"format" validate:"omitempty,oneof=console json"`
	Filename   string `yaml:"filename" toml:"filename"`
	MaxSize    int    `yaml:"max-size" toml:"max-size" validate:"gte=0"`
	MaxDays    int    `yaml:"max-days" toml:"max-days" validate:"gte=0"`
	MaxBackups int    `yaml:"max-backups" toml:"max-backups" validate:"gte=0"`
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
	}
}

func (cfg Config) getLevel() (zap.AtomicLevel, error) {
	if cfg.Level == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	lvl, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("%q: %w", cfg.Level, ErrInvalidLevel)
	}

	return lvl, nil
}

func (cfg Config) getEncoder() (zapcore.Encoder, error) {
	switch cfg.Format {
	case "", FormatConsole:
		return getLoggerEncoder(FormatConsole), nil
	case FormatJSON:
		return getLoggerEncoder(FormatJSON), nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Format, ErrUnsupportedFormat)
	}
}

func (cfg Config) getSyncer() zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return getConsoleSyncer()
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	})
}

func (cfg Config) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()}
}

func getLoggerEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayout)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	if format == FormatJSON {
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg.ConsoleSeparator = " "

	return zapcore.NewConsoleEncoder(encCfg)
}

func getConsoleSyncer() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}

// New builds a logger from cfg.
//
// Errors: ErrInvalidLevel, ErrUnsupportedFormat.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := cfg.getLevel()
	if err != nil {
		return nil, err
	}
	enc, err := cfg.getEncoder()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, cfg.getSyncer(), lvl)

	return zap.New(core, cfg.getOptions()...), nil
}

//----------------------------------------------------------------------------//
// process-wide logger
//----------------------------------------------------------------------------//

var logger atomic.Pointer[zap.Logger]

// SetLogger installs l as the process-wide logger. nil restores the no-op
// logger. Safe for concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the process-wide logger, a no-op logger until SetLogger
// is called. Safe for concurrent use.
func Logger() *zap.Logger {
	l := logger.Load()
	if l == nil {
		l = zap.NewNop()
		logger.Store(l)
	}

	return l
}

// Setup builds a logger from cfg and installs it process-wide.
func Setup(cfg Config) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	SetLogger(l)

	return l, nil
}

// Elapsed is a zap field for a duration since start.
func Elapsed(start time.Time) zap.Field {
	return zap.Duration("elapsed", time.Since(start))
}
