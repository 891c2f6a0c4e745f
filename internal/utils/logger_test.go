package utils

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"quiet", LevelQuiet},
		{"q", LevelQuiet},
		{"NORMAL", LevelNormal},
		{"verbose", LevelVerbose},
		{"d", LevelDebug},
		{"unknown", LevelNormal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LogLevelFromString(tt.input))
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer func() {
		SetLogLevel(LevelNormal)
		SetLogOutput(os.Stderr)
	}()

	SetLogLevel(LevelQuiet)
	LogInfo("hidden %d", 1)
	LogError("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	SetLogLevel(LevelVerbose)
	LogVerbose("detail")
	LogDebug("trace detail")
	assert.Contains(t, buf.String(), "detail")
	assert.NotContains(t, buf.String(), "trace detail")
}
