package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the type every engine component logs through. It is an alias of
// *zap.SugaredLogger, so the full sugared zap API is available directly.
type Logger = *zap.SugaredLogger

// NewLoggerConfig returns the engine's default zap config: console encoding,
// info level, colored level names, no stacktraces, grounded on the teacher's
// NewLoggerConfig.
func NewLoggerConfig() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a named logger at info level.
func NewLogger(name string) Logger {
	cfg := NewLoggerConfig()
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar().Named(name)
}

// NewDebugLogger returns a named logger at debug level, for verbose solver
// diagnostics (LCP non-convergence, MPR iteration counts).
func NewDebugLogger(name string) Logger {
	cfg := NewLoggerConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar().Named(name)
}

// NewTestLogger returns a debug-level logger that writes through testing.TB,
// so solver warnings surface in `go test -v` output attributed to the right
// test.
func NewTestLogger(tb testing.TB) Logger {
	return zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Sugar()
}
