package logutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig_getLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"empty", "", zapcore.InfoLevel},
		{"debug", "debug", zapcore.DebugLevel},
		{"info", "info", zapcore.InfoLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Config{Level: tt.level}.getLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl.Level())
		})
	}

	_, err := Config{Level: "chatty"}.getLevel()
	require.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestConfig_getEncoder(t *testing.T) {
	for _, format := range []string{"", FormatConsole, FormatJSON} {
		enc, err := Config{Format: format}.getEncoder()
		require.NoError(t, err, format)
		require.NotNil(t, enc, format)
	}

	_, err := Config{Format: "xml"}.getEncoder()
	require.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func Test_getLoggerEncoder(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.DebugLevel, Message: "hello"}

	tests := []struct {
		format string
		want   *regexp.Regexp
	}{
		{FormatConsole, regexp.MustCompile(`^0001/01/01 00:00:00\.000000 \+0000 DEBUG hello`)},
		{FormatJSON, regexp.MustCompile(`"level":"DEBUG".*"msg":"hello"`)},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf, err := getLoggerEncoder(tt.format).EncodeEntry(entry, nil)
			require.NoError(t, err)
			defer buf.Free()
			assert.Regexp(t, tt.want, buf.String())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	require.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = New(Config{Level: "loud"})
	require.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primecluster.log")
	l, err := New(Config{Level: "debug", Format: FormatJSON, Filename: path, MaxSize: 1})
	require.NoError(t, err)

	l.Debug("scan finished", zap.Int("clusters", 2))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"scan finished"`)
	assert.Contains(t, string(data), `"clusters":2`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	l, err := New(Config{Level: "warn", Format: FormatConsole, Filename: path})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(data, []byte("dropped")))
	assert.True(t, bytes.Contains(data, []byte("WARN")))
	assert.True(t, bytes.Contains(data, []byte("kept")))
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	require.NotNil(t, Logger())

	l := zap.NewExample()
	SetLogger(l)
	assert.Same(t, l, Logger())

	SetLogger(nil)
	assert.NotSame(t, l, Logger())
	assert.NotNil(t, Logger())
}

func TestSetup(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	l, err := Setup(Config{Level: "error", Filename: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.Same(t, l, Logger())

	_, err = Setup(Config{Format: "yaml"})
	require.Error(t, err)
	assert.Same(t, l, Logger())
}

func TestElapsed(t *testing.T) {
	f := Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", f.Key)
	assert.Equal(t, zapcore.DurationType, f.Type)
	assert.GreaterOrEqual(t, time.Duration(f.Integer), time.Second)
}
