// Package log is wallpick's logging facade. It keeps a small, printf-style
// API for call sites and delegates formatting, levels and outputs to logrus.
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"wallpick/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type settings struct {
	out   io.Writer
	file  string
	json  bool
	level logrus.Level
}

// Option configures a Logger.
type Option func(*settings)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithFile appends log lines to the file at path, creating parent
// directories as needed. It takes precedence over WithOutput.
func WithFile(path string) Option {
	return func(s *settings) { s.file = path }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(s *settings) { s.json = true }
}

// WithLevel sets the minimum level. Unknown names fall back to info.
func WithLevel(name string) Option {
	return func(s *settings) {
		lvl, err := logrus.ParseLevel(name)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		s.level = lvl
	}
}

// Logger writes leveled, optionally structured log lines.
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
	file  *os.File
}

// NewLogger creates a logger. Without options it writes text to stderr at
// info level.
func NewLogger(opts ...Option) *Logger {
	l, _ := newLogger(opts...)
	return l
}

func newLogger(opts ...Option) (*Logger, error) {
	s := &settings{out: os.Stderr, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(s)
	}

	base := logrus.New()
	// Filtering happens in Logger.enabled so SetDebug can flip it at runtime.
	base.SetLevel(logrus.TraceLevel)
	if s.json {
		base.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{level: s.level}
	base.SetOutput(s.out)
	if s.file != "" {
		if err := os.MkdirAll(filepath.Dir(s.file), 0755); err != nil {
			l.entry = logrus.NewEntry(base)
			return l, errors.NewFileError("failed to create log directory", s.file, errors.IOError, err)
		}
		f, err := os.OpenFile(s.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.entry = logrus.NewEntry(base)
			return l, errors.NewFileError("failed to open log file", s.file, errors.IOError, err)
		}
		base.SetOutput(f)
		l.file = f
	}
	l.entry = logrus.NewEntry(base)
	return l, nil
}

// Configure replaces the package-level logger. The previous logger's file,
// if any, is closed.
func Configure(opts ...Option) error {
	l, err := newLogger(opts...)
	if err != nil {
		return err
	}
	old := logger
	logger = l
	if old != nil && old.file != nil {
		_ = old.file.Close()
	}
	return nil
}

// Close releases the package-level logger's file, if any.
func Close() error {
	if logger.file == nil {
		return nil
	}
	err := logger.file.Close()
	logger.file = nil
	return err
}

// SetDebug enables debug output on every logger regardless of its level.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), level: l.level, file: l.file}
}

// WithError returns a child logger describing err. Application errors also
// contribute their kind and the path, parameter or backend they refer to.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var fileErr *errors.FileError
	var decodeErr *errors.DecodeError
	var configErr *errors.ConfigError
	var compErr *errors.CompositorError
	switch {
	case errors.As(err, &decodeErr):
		fields = append(fields, F("path", decodeErr.Path()))
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &compErr):
		fields = append(fields, F("backend", compErr.Backend()))
	}
	return l.With(fields...)
}

// WithContext returns a child logger bound to ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), level: l.level, file: l.file}
}

func (l *Logger) enabled(lvl logrus.Level) bool {
	if lvl == logrus.DebugLevel && isDebug.Load() {
		return true
	}
	return lvl <= l.level
}

func (l *Logger) log(lvl logrus.Level, msg string) {
	if !l.enabled(lvl) {
		return
	}
	l.entry.Log(lvl, msg)
}

func (l *Logger) logf(lvl logrus.Level, format string, args ...interface{}) {
	if !l.enabled(lvl) {
		return
	}
	l.entry.Logf(lvl, format, args...)
}

func (l *Logger) Debug(msg string) { l.log(logrus.DebugLevel, msg) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(logrus.DebugLevel, format, args...)
}
func (l *Logger) Info(msg string)                          { l.log(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(logrus.InfoLevel, format, args...) }
func (l *Logger) Warn(msg string)                          { l.log(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(logrus.WarnLevel, format, args...) }
func (l *Logger) Error(msg string)                         { l.log(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(logrus.ErrorLevel, format, args...)
}

// Package-level helpers write through the configured logger.

func Debug(msg string)                          { logger.Debug(msg) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Info(msg string)                           { logger.Info(msg) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(msg string)                           { logger.Warn(msg) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(msg string)                          { logger.Error(msg) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// LogWithFields returns the package-level logger carrying fields.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package-level logger describing err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}
