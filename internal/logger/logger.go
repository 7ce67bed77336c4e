package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var zapLevels = map[Level]zapcore.Level{
	DEBUG: zapcore.DebugLevel,
	INFO:  zapcore.InfoLevel,
	WARN:  zapcore.WarnLevel,
	ERROR: zapcore.ErrorLevel,
	FATAL: zapcore.FatalLevel,
}

var (
	outMu  sync.RWMutex
	out    zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	toFile bool
)

// SetOutput redirects every logger, including ones created earlier. The TUI
// uses it to keep log lines off the terminal it draws on.
func SetOutput(w io.Writer) {
	setOutput(w, false)
}

func setOutput(w io.Writer, file bool) {
	outMu.Lock()
	defer outMu.Unlock()
	out = zapcore.Lock(zapcore.AddSync(w))
	toFile = file
}

// SetOutputFile is SetOutput for an append-only file. The returned func closes it.
// Level colours are off in the file unless LOG_COLORS=true.
func SetOutputFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	setOutput(f, true)
	return f.Close, nil
}

func writingToFile() bool {
	outMu.RLock()
	defer outMu.RUnlock()
	return toFile
}

// levelEncoder picks colours per line so loggers created before SetOutputFile
// follow the current sink. LOG_COLORS=true or false overrides the default.
func levelEncoder(setting string) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		colors := setting == "true" || (setting != "false" && !writingToFile())
		if colors {
			zapcore.CapitalColorLevelEncoder(l, enc)
			return
		}
		zapcore.CapitalLevelEncoder(l, enc)
	}
}

// currentOutput forwards to whatever SetOutput installed last.
type currentOutput struct{}

func (currentOutput) Write(p []byte) (int, error) {
	outMu.RLock()
	w := out
	outMu.RUnlock()
	return w.Write(p)
}

func (currentOutput) Sync() error {
	outMu.RLock()
	w := out
	outMu.RUnlock()
	return w.Sync()
}

type Logger struct {
	level   Level
	service string
	sugar   *zap.SugaredLogger
}

func New(service string) *Logger {
	return NewWithLevel(service, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func NewWithLevel(service string, level Level) *Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "service",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      levelEncoder(strings.ToLower(os.Getenv("LOG_COLORS"))),
		EncodeName:       func(name string, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString("[" + name + "]") },
		ConsoleSeparator: " ",
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), currentOutput{}, zapLevels[level])
	base := zap.New(core)
	if service != "" {
		base = base.Named(service)
	}

	return &Logger{
		level:   level,
		service: service,
		sugar:   base.Sugar(),
	}
}

func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func (l Level) String() string {
	return levelNames[l]
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatal logs and exits the process.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l})
	log.SetFlags(0)
}

type stdLogWriter struct {
	logger *Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	w.logger.Info("%s", msg)
	return len(p), nil
}
