package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)

	// The default file should now exist and round-trip the defaults.
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.AuthTimeout)
	assert.False(t, cfg.EnforceFriendGate)
	assert.False(t, cfg.RejectSpoofedSender)
	assert.Equal(t, 16, cfg.EventBuffer)
}

func TestLoadReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte("addr: \":9090\"\nenforce_friend_gate: true\nauth_timeout: 500ms\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.EnforceFriendGate)
	assert.Equal(t, 500*time.Millisecond, cfg.AuthTimeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	t.Setenv("PEERCALL_ADDR", ":7070")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}
