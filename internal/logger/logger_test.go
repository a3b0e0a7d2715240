package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, InitWithOptions(Options{}))
	})
}

func TestDefaultIsNop(t *testing.T) {
	require.NotNil(t, Log)
	require.NotNil(t, Sugar)
	// Must not panic before Init.
	Named("picking").Info("ignored")
	Sync()
}

func TestLogRotation(t *testing.T) {
	reset(t)
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")

	// 1MB is the smallest size lumberjack allows.
	require.NoError(t, InitWithOptions(Options{
		Level: "debug",
		File: FileConfig{
			Path:       logFile,
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 1,
		},
	}))

	long := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("entry %d: %s", i, long)
	}
	Sync()

	_, err := os.Stat(logFile)
	require.NoError(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated []string
	for _, f := range files {
		if f.Name() != "test.log" && strings.HasPrefix(f.Name(), "test-") {
			rotated = append(rotated, f.Name())
		}
	}
	assert.NotEmpty(t, rotated, "expected at least one rotated file")
	for _, name := range rotated {
		// test-YYYY-MM-DDTHH-MM-SS.SSS.log
		assert.Contains(t, name, "-20")
	}
}

func TestLogLevels(t *testing.T) {
	reset(t)
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, InitWithOptions(Options{Level: tt.level, Console: &buf}))

			Log.Debug("debug message")
			Log.Info("info message")
			Log.Warn("warn message")
			Log.Error("error message")
			Sync()

			out := buf.String()
			for _, exp := range tt.expected {
				assert.Contains(t, out, exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, out, exc)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	reset(t)
	var buf bytes.Buffer
	require.NoError(t, InitWithOptions(Options{Console: &buf}))

	Named("kdtree").Info("built")
	assert.Contains(t, buf.String(), "kdtree")
	assert.Contains(t, buf.String(), "built")
}

func TestInvalidLevel(t *testing.T) {
	reset(t)
	err := InitWithOptions(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = ParseLevel("WARN")
	assert.NoError(t, err)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/spatial3d.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/spatial3d.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}, cfg)
}
