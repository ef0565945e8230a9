// Package tracelog supplies the simplify.Logger implementation used by the
// CLI: a zap sugared logger writing to a lumberjack-rotated file, plus
// console output when verbose mode is on.
package tracelog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Path is the log file to append traces to. Empty disables file output.
	Path string
	// Console additionally mirrors traces to stderr.
	Console bool
	// MaxSizeMB is the lumberjack rotation threshold; zero uses its default.
	MaxSizeMB int
}

// Logger adapts a *zap.SugaredLogger to simplify.Logger's single-method
// Tracef contract.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a Logger per opts. Callers should call Sync before exiting.
func New(opts Options) *Logger {
	var cores []zapcore.Core

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Path != "" {
		rotator := &lumberjack.Logger{
			Filename: opts.Path,
			MaxSize:  opts.MaxSizeMB,
			MaxAge:   28,
			Compress: true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotator),
			zapcore.DebugLevel,
		))
	}

	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			zapcore.DebugLevel,
		))
	}

	var core zapcore.Core
	if len(cores) == 0 {
		core = zapcore.NewNopCore()
	} else {
		core = zapcore.NewTee(cores...)
	}

	return &Logger{sugar: zap.New(core).Sugar()}
}

// Tracef implements simplify.Logger.
func (l *Logger) Tracef(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
