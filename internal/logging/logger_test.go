package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debug().Msg("hidden")
	l.Info().Int("entries", 3).Msg("catalog loaded")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "catalog loaded")
	assert.Contains(t, out, "entries=3")
	assert.NotContains(t, out, "\x1b[", "log files must not carry color escapes")
}

func TestComponentTagsLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")

	zl := l.Component("navstate")
	zl.Debug().Msg("history write")
	assert.Contains(t, buf.String(), "component=navstate")
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rgallery.log")

	l, err := Open(path, "info")
	require.NoError(t, err)
	l.Infof("first %d", 1)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	l, err = Open(path, "info")
	require.NoError(t, err)
	l.Info().Msg("second")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first 1")
	assert.Contains(t, lines[1], "second")
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error().Msg("nothing")
	assert.NoError(t, l.Close())
}
