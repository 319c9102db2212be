package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls how much diagnostic output is written to stderr.
type Level int

const (
	Off Level = iota
	Basic
	Detailed
	Trace
	Wire
)

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Trace:
		return "trace"
	default:
		return "wire"
	}
}

// LevelFromInt clamps i into the known levels.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i >= int(Wire):
		return Wire
	default:
		return Level(i)
	}
}

var (
	mu     sync.RWMutex
	level  = Off
	logger = newLogger()
)

func newLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.DisableStacktrace = true
	config.DisableCaller = true
	config.EncoderConfig.TimeKey = ""
	config.OutputPaths = []string{"stderr"}
	l, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetLevel changes the active debug level.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetLogger replaces the underlying logger, mainly for tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
}

// Debug writes the message when the current level is at least l.
func Debug(l Level, format string, a ...any) {
	mu.RLock()
	current, lg := level, logger
	mu.RUnlock()
	if current >= l && l > Off {
		lg.Debugf(format, a...)
	}
}

// Log writes the message regardless of level.
func Log(format string, a ...any) {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.Infof(format, a...)
}

// Warn writes a warning regardless of level.
func Warn(format string, a ...any) {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.Warnf(format, a...)
}

// Sync flushes buffered output.
func Sync() {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	_ = lg.Sync()
}

// Truncate shortens s for wire-level logging.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return fmt.Sprintf("%s... (%d more chars)", string(r[:max]), len(r)-max)
}
