package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

// Options control where records go and how the file rotates.
type Options struct {
	FilePath   string
	Production bool
	// Level is the minimum level of the file core ("debug", "info", ...). Invalid values mean info.
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

const serviceName = "text-summarizer"

type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger writes JSON records to a rotated file and mirrors them to stdout,
// human readable outside production.
func NewZapLogger(opts Options) *ZapLogger {
	rotator := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
		Compress:   true,
	}

	fileLevel, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		fileLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	fileCore := zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), fileLevel)

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	consoleLevel := zapcore.DebugLevel
	if opts.Production {
		consoleEncoder = jsonEncoder
		consoleLevel = fileLevel
	}
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), consoleLevel)

	l := zap.New(zapcore.NewTee(fileCore, consoleCore),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", serviceName)),
	)
	return &ZapLogger{logger: l}
}

// NewNopLogger discards everything. Used by tests and the CLI.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.logger.Debug(message, fields(module, details)...)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.logger.Info(message, fields(module, details)...)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.logger.Warn(message, fields(module, details)...)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.logger.Error(message, fields(module, details)...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// fields lifts session_id and error out of details so they can be queried directly.
func fields(module string, details map[string]interface{}) []zap.Field {
	out := []zap.Field{zap.String("module", module)}
	if details == nil {
		return append(out, zap.Any("details", map[string]interface{}{}))
	}
	if id, ok := details["session_id"].(string); ok {
		out = append(out, zap.String("session_id", id))
	}
	switch e := details["error"].(type) {
	case error:
		out = append(out, zap.Error(e))
	case string:
		out = append(out, zap.String("error", e))
	}
	return append(out, zap.Any("details", details))
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
