package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"chatty": zerolog.InfoLevel,
		"info":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONToStderr(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	res := New(Config{Level: "warn", Format: "json", Stderr: &buf})
	defer res.Close()

	assert.False(t, res.UsingFile)
	res.Logger.Info().Msg("hidden")
	clientLog := ComponentLogger(res.Logger, "client")
	clientLog.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"client"`)
	assert.Contains(t, out, `"message":"shown"`)

	log.Warn().Msg("global")
	assert.Contains(t, buf.String(), "global", "New installs the global logger")
}

func TestNew_FileCreatesDirectories(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	path := filepath.Join(t.TempDir(), "state", "namelist", "namelist.log")
	res := New(Config{Level: "debug", Format: "json", File: path})
	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Debug().Str("k", "v").Msg("to file")
	require.NoError(t, res.Close())
	require.NoError(t, res.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"k":"v"`)
}

func TestNew_UnwritableFileFallsBack(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var buf bytes.Buffer
	res := New(Config{Format: "console", File: filepath.Join(blocker, "x.log"), Stderr: &buf})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.NotEmpty(t, res.FallbackReason)

	res.Logger.Info().Msg("fallback works")
	assert.Contains(t, buf.String(), "fallback works")

	var warn bytes.Buffer
	PrintFallbackWarning(&warn, res.FallbackReason)
	assert.Contains(t, warn.String(), "logging to stderr")
}
