package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilentByDefault(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewText(&buf, "warn")
	require.NoError(t, err)

	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Info("hidden")
	Logger().Warn("GL error after draw", "draw", "quad")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "draw=quad")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
	_, err = NewText(&bytes.Buffer{}, "verbose")
	assert.Error(t, err)
}
