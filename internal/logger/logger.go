package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger handles leveled logging to the console with optional rotated file output
type Logger struct {
	Verbose bool

	mu      sync.Mutex
	console zapcore.Core
	file    *lumberjack.Logger
	sugar   *zap.SugaredLogger
}

// FileOptions controls rotation of the log file
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	defaultMu sync.RWMutex
	defaultL  = Nop()
)

// New creates a new Logger writing to stdout
func New(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.CallerKey = ""

	console := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), level)

	l := &Logger{Verbose: verbose, console: console}
	l.sugar = zap.New(console).Sugar()
	return l
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// SetDefault replaces the process-wide logger used by packages that have no
// logger of their own.
func SetDefault(l *Logger) {
	if l == nil {
		l = Nop()
	}
	defaultMu.Lock()
	defaultL = l
	defaultMu.Unlock()
}

// Default returns the process-wide logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultL
}

// SetFileLog enables JSON logging to a rotated file. Debug messages always
// reach the file, even in non-verbose mode.
func (l *Logger) SetFileLog(path string, opts FileOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(l.file), zapcore.DebugLevel)

	core := fileCore
	if l.console != nil {
		core = zapcore.NewTee(l.console, fileCore)
	}
	l.sugar = zap.New(core).Sugar()
	return nil
}

// With returns a child logger that stamps every entry with the given key/value pairs
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	return &Logger{
		Verbose: l.Verbose,
		console: l.console,
		file:    l.file,
		sugar:   l.sugar.With(keysAndValues...),
	}
}

// Close flushes buffered entries and closes the log file if open
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.get().Infof(format, args...)
}

// Debug logs detailed messages, shown on the console only in verbose mode
func (l *Logger) Debug(format string, args ...interface{}) {
	l.get().Debugf(format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.get().Warnf(format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.get().Errorf(format, args...)
}

func (l *Logger) get() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}
