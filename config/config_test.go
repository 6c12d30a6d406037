package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primecluster/config"
	"github.com/katalvlaran/primecluster/finder"
	"github.com/katalvlaran/primecluster/matchmatrix"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// clearEnv blanks the overrides so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvMinSize, config.EnvWorkers, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, finder.DefaultMinClusterSize, cfg.Finder.MinClusterSize)
	assert.Equal(t, "per-row-minimum", cfg.Finder.SeedPolicy)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"defaults"}, cfg.LoadedFrom)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "primecluster.yml", `
finder:
  min-cluster-size: 4
  look-ahead: 1
matrix:
  bitmap: true
batch:
  workers: 8
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Finder.MinClusterSize)
	assert.Equal(t, 1, cfg.Finder.LookAhead)
	assert.Equal(t, finder.DefaultGrowThreshold, cfg.Finder.GrowThreshold, "absent keys keep defaults")
	assert.True(t, cfg.Matrix.Bitmap)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"defaults", path}, cfg.LoadedFrom)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "primecluster.toml", `
[finder]
seed-policy = "average"
seed-threshold = 0.9
grow-threshold = 0.7

[matrix]
reflexive = true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "average", cfg.Finder.SeedPolicy)
	assert.InDelta(t, 0.9, cfg.Finder.SeedThreshold, 1e-12)
	assert.InDelta(t, 0.7, cfg.Finder.GrowThreshold, 1e-12)
	assert.True(t, cfg.Matrix.Reflexive)
}

func TestLoad_EmptyYAML(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Finder, cfg.Finder)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvMinSize, "5")
	t.Setenv(config.EnvWorkers, "2")
	t.Setenv(config.EnvLogLevel, "WARN")

	path := writeFile(t, "c.yaml", "finder:\n  min-cluster-size: 4\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Finder.MinClusterSize, "environment wins over the file")
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"defaults", path, "environment"}, cfg.LoadedFrom)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
		body string
		want error
	}{
		{name: "unknown extension", file: "c.ini", body: "k=3", want: config.ErrUnsupportedFormat},
		{name: "zero min size", file: "c.yaml", body: "finder:\n  min-cluster-size: 0\n", want: config.ErrInvalidConfig},
		{name: "threshold above one", file: "c.toml", body: "[finder]\ngrow-threshold = 1.5\n", want: config.ErrInvalidConfig},
		{name: "bad policy", file: "c.yaml", body: "finder:\n  seed-policy: median\n", want: config.ErrInvalidConfig},
		{name: "bad log format", file: "c.yaml", body: "log:\n  format: xml\n", want: config.ErrInvalidConfig},
		{name: "unknown toml key", file: "c.toml", body: "[finder]\nwidth = 3\n", want: config.ErrInvalidConfig},
		{name: "non-numeric workers", env: map[string]string{config.EnvWorkers: "many"}, want: config.ErrInvalidConfig},
		{name: "zero workers", env: map[string]string{config.EnvWorkers: "0"}, want: config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file, tt.body)
			}
			_, err := config.Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLoad_UnknownYAMLKey(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(writeFile(t, "c.yaml", "finder:\n  width: 3\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate_ReportsAllFields(t *testing.T) {
	cfg := config.Default()
	cfg.Finder.MinClusterSize = 0
	cfg.Batch.Workers = 0

	err := cfg.Validate()
	require.True(t, errors.Is(err, config.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "Finder.MinClusterSize must be >= 1")
	assert.Contains(t, err.Error(), "Batch.Workers must be >= 1")
}

func TestFinderConfig_Options(t *testing.T) {
	fc := config.Default().Finder
	fc.MinClusterSize = 2
	fc.SeedPolicy = "average"
	fc.LookAhead = 0

	opts, err := fc.Options()
	require.NoError(t, err)

	m, err := matchmatrix.FromInts([][]int{{1, 1}, {1, 1}})
	require.NoError(t, err)
	f, err := finder.New(m, opts...)
	require.NoError(t, err)

	got := f.Options()
	assert.Equal(t, 2, got.MinClusterSize)
	assert.Equal(t, matchmatrix.Average, got.SeedPolicy)
	assert.Equal(t, 0, got.LookAhead)

	fc.SeedPolicy = "median"
	_, err = fc.Options()
	require.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestMatrixConfig_Options(t *testing.T) {
	assert.Empty(t, config.MatrixConfig{}.Options())

	opts := config.MatrixConfig{Reflexive: true, CheckSymmetry: true}.Options()
	require.Len(t, opts, 2)

	_, err := matchmatrix.FromInts([][]int{{0, 1}, {0, 0}}, opts...)
	require.True(t, errors.Is(err, matchmatrix.ErrAsymmetric))

	m, err := matchmatrix.FromInts([][]int{{0, 0}, {0, 0}}, opts...)
	require.NoError(t, err)
	ok, err := m.Matches(1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
