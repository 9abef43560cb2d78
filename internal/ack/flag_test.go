package ack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcknowledgeLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	f := New(dir)
	assert.Equal(t, filepath.Join(dir, FileName), f.Path())

	ok, err := f.Acknowledged()
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.Acknowledge(now))

	ok, err = f.Acknowledged()
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:00:00Z", strings.TrimSpace(string(data)))

	require.NoError(t, f.Reset())
	ok, err = f.Acknowledged()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Reset(), "resetting an absent flag is fine")
}

func TestAcknowledgeFailsWhenDirIsFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	f := New(blocker)
	err := f.Acknowledge(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create state directory")
}
