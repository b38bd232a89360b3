// Package logger wires zap for the staircut binaries: a colored console
// core for interactive runs, and an optional rotated file core so long
// pipeline runs on a shop machine keep a trail without filling the disk.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It is a nop until Init runs, so
// package code may log unconditionally.
var Log = zap.NewNop()

// Rotation bounds for the file core. Pipeline runs are chatty at debug
// level but short, so a handful of small files covers a month of use.
const (
	fileMaxSizeMB  = 20
	fileMaxBackups = 5
	fileMaxAgeDays = 30
)

// Init replaces Log with a real logger at the given level. When path is
// non-empty a rotated plain-text file core is teed in next to the
// console. Unknown level strings fall back to info.
func Init(level, path string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), zapcore.AddSync(os.Stdout), lvl),
	}
	if path != "" {
		w := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(w), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return nil
}

// consoleEncoder keeps interactive output short: wall-clock time only,
// colored levels.
func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(cfg)
}

// fileEncoder writes full ISO8601 timestamps without color codes.
func fileEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(cfg)
}

// Sync flushes buffered entries; called on shutdown.
func Sync() {
	_ = Log.Sync()
}

func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }
