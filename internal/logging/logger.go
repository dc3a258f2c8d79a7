package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	File   string // 비어 있으면 stdout만 사용
	// lumberjack 회전 설정
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// New builds the process logger. Logs always go to stdout and, when File is
// set, to a rotating file as well.
func New(opts Options) *zap.Logger {
	level := parseLevel(opts.Level)

	var writers []zapcore.WriteSyncer
	writers = append(writers, zapcore.AddSync(os.Stdout))
	if opts.File != "" {
		writers = append(writers, zapcore.AddSync(fileWriter(opts)))
	}

	core := zapcore.NewCore(encoder(opts.Format), zapcore.NewMultiWriteSyncer(writers...), level)
	if level == zap.DebugLevel {
		return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	}
	return zap.New(core, zap.AddCaller())
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func encoder(format string) zapcore.Encoder {
	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig())
	}
	return zapcore.NewJSONEncoder(encoderConfig())
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func fileWriter(opts Options) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxAge:     opts.MaxAgeDays,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}
	if w.MaxSize == 0 {
		w.MaxSize = 100
	}
	if w.MaxAge == 0 {
		w.MaxAge = 7
	}
	return w
}
