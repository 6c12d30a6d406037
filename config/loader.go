package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvMinSize  = "PRIMECLUSTER_MIN_SIZE"
	EnvWorkers  = "PRIMECLUSTER_WORKERS"
	EnvLogLevel = "PRIMECLUSTER_LOG_LEVEL"
)

// FileLoader decodes one file format onto an existing target, leaving
// fields absent from the file untouched.
type FileLoader interface {
	Load(r io.Reader, target any) error
	Extension() string
}

// Loader layers defaults, one config file and environment variables.
type Loader struct {
	fileLoaders map[string]FileLoader
}

// NewLoader returns a Loader with the YAML and TOML formats registered.
func NewLoader() *Loader {
	l := &Loader{
		fileLoaders: make(map[string]FileLoader),
	}
	l.RegisterLoader(&YAMLLoader{})
	l.RegisterLoader(&TOMLLoader{})

	return l
}

// RegisterLoader adds or replaces the loader for fl.Extension().
func (l *Loader) RegisterLoader(fl FileLoader) {
	l.fileLoaders[fl.Extension()] = fl
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty) and the environment, then validates it.
//
// Errors: ErrUnsupportedFormat, ErrInvalidConfig, or the file's open/decode error.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = append(cfg.LoadedFrom, "defaults")

	if path != "" {
		if err := l.loadFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.LoadedFrom = append(cfg.LoadedFrom, path)
	}

	applied, err := l.loadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	if applied {
		cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) loadFile(path string, cfg *Config) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = "yaml"
	}
	fl, ok := l.fileLoaders[ext]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = fl.Load(f, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnvironment overlays the PRIMECLUSTER_* variables. It reports whether
// any was set.
func (l *Loader) loadEnvironment(cfg *Config) (bool, error) {
	applied := false
	if v := os.Getenv(EnvMinSize); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return false, fmt.Errorf("%s=%q: %w", EnvMinSize, v, ErrInvalidConfig)
		}
		cfg.Finder.MinClusterSize = k
		applied = true
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return false, fmt.Errorf("%s=%q: %w", EnvWorkers, v, ErrInvalidConfig)
		}
		cfg.Batch.Workers = w
		applied = true
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
		applied = true
	}

	return applied, nil
}

// Load is shorthand for NewLoader().Load(path).
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

//----------------------------------------------------------------------------//
// file loaders
//----------------------------------------------------------------------------//

// YAMLLoader decodes YAML. An empty document leaves the target unchanged;
// keys with no matching field are rejected.
type YAMLLoader struct{}

func (*YAMLLoader) Load(r io.Reader, target any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func (*YAMLLoader) Extension() string { return "yaml" }

// TOMLLoader decodes TOML. Keys with no matching field are rejected.
type TOMLLoader struct{}

func (*TOMLLoader) Load(r io.Reader, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), target)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys %v: %w", undecoded, ErrInvalidConfig)
	}

	return nil
}

func (*TOMLLoader) Extension() string { return "toml" }
