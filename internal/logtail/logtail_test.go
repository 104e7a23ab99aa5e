package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	require.NoError(t, os.WriteFile(logPath, []byte(content.String()), 0o644))

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
		{"read one", 1, expectedAll[9:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		line  string
		want  zerolog.Level
		found bool
	}{
		{`{"level":"warn","message":"x"}`, zerolog.WarnLevel, true},
		{`  {"level":"debug"}`, zerolog.DebugLevel, true},
		{`{"message":"no level"}`, zerolog.NoLevel, false},
		{`{broken`, zerolog.NoLevel, false},
		{"2025-03-01T10:00:00Z ERR request failed", zerolog.ErrorLevel, true},
		{"2025-03-01T10:00:00Z INF started", zerolog.InfoLevel, true},
		{"    continuation", zerolog.NoLevel, false},
		{"", zerolog.NoLevel, false},
	}
	for _, tt := range tests {
		got, ok := LevelOf(tt.line)
		assert.Equal(t, tt.found, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`{"level":"debug","message":"a"}`,
		`{"level":"info","message":"b"}`,
		"2025-03-01T10:00:00Z WRN c",
		"plain text",
		`{"level":"error","message":"d"}`,
	}

	assert.Equal(t, []string{
		"2025-03-01T10:00:00Z WRN c",
		"plain text",
		`{"level":"error","message":"d"}`,
	}, Filter(lines, zerolog.WarnLevel))
	assert.Equal(t, lines, Filter(lines, zerolog.DebugLevel))
	assert.Equal(t, []string{}, Filter(nil, zerolog.InfoLevel))
}
