package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFromInt(t *testing.T) {
	tests := []struct {
		in   int
		want Level
	}{
		{in: -1, want: Off},
		{in: 0, want: Off},
		{in: 1, want: Basic},
		{in: 2, want: Detailed},
		{in: 3, want: Trace},
		{in: 4, want: Wire},
		{in: 9, want: Wire},
	}

	for _, tc := range tests {
		if got := LevelFromInt(tc.in); got != tc.want {
			t.Fatalf("LevelFromInt(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDebugRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())
	defer SetLevel(Off)

	SetLevel(Basic)
	Debug(Basic, "chunked %d notes", 3)
	Debug(Wire, "raw prompt %s", "hidden")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "chunked 3 notes", logs.All()[0].Message)

	SetLevel(Off)
	Debug(Basic, "ignored")
	assert.Equal(t, 1, logs.Len())

	Log("always shown")
	assert.Equal(t, 2, logs.Len())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc... (3 more chars)", Truncate("abcdef", 3))
}
