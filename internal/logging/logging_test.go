package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOnly(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Console: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("constraints applied", "count", 23)
	l.Warn("bone missing")

	assert.Equal(t, "constraints applied\nbone missing\n", buf.String())
	require.NoError(t, l.Close())
}

func TestDebugConsole(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Console: &buf, Debug: true})
	require.NoError(t, err)

	l.Debug("shown")
	assert.Equal(t, "shown\n", buf.String())
}

func TestFileLogging(t *testing.T) {
	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "logs", "rig.log")

	l, err := New(Options{Console: &buf, File: path})
	require.NoError(t, err)

	l.With("rig", "Rigify").Debug("toggle missing", "bone", "thigh_parent.L")
	l.Info("baked")
	require.NoError(t, l.Close())

	assert.Equal(t, "baked\n", buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG msg=\"toggle missing\" rig=Rigify bone=thigh_parent.L")
	assert.Contains(t, string(data), "level=INFO msg=baked")
}

func TestRotationFromEnv(t *testing.T) {
	env := map[string]string{
		EnvMaxSize:    "5",
		EnvMaxBackups: "0",
		EnvMaxAge:     "-1",
	}

	lj := newRotatingFile("x.log", func(k string) string { return env[k] })

	assert.Equal(t, 5, lj.MaxSize)
	assert.Equal(t, 0, lj.MaxBackups)
	assert.Equal(t, 30, lj.MaxAge)
	assert.False(t, lj.Compress)
}
