// Package errors provides standardized error handling for wallpick.
// It defines the error kinds shared by the library scanner, the image decoder,
// the preview pipeline and the compositor backends, together with helpers for
// consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard errors package so callers need one import.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind classifies a failure so callers can react without matching
// message text.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Decode error kinds
	UnsupportedFormat
	CorruptImage
	IOError
	ProtocolBuildFailed
	// Pipeline error kinds
	WorkerStopped
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Compositor error kinds
	CompositorFailed
	CompositorUnavailable
	NoMonitors
)

var kindNames = map[ErrorKind]string{
	Unknown:               "unknown",
	FileNotFound:          "not found",
	FileAccessDenied:      "access denied",
	InvalidPath:           "invalid path",
	UnsupportedFormat:     "unsupported format",
	CorruptImage:          "corrupt image",
	IOError:               "i/o error",
	ProtocolBuildFailed:   "protocol build failed",
	WorkerStopped:         "worker stopped",
	InvalidConfig:         "invalid config",
	ConfigNotFound:        "config not found",
	CompositorFailed:      "compositor failed",
	CompositorUnavailable: "compositor unavailable",
	NoMonitors:            "no monitors",
}

// String returns a short human readable name for the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels, comparable with Is.
var (
	ErrFileNotFound  = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidPath   = NewFileError("invalid file path", "", InvalidPath, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)

	// ErrWorkerStopped is returned when a decode request is sent after the
	// decode worker has exited.
	ErrWorkerStopped = &ApplicationError{msg: "preview worker stopped", kind: WorkerStopped}
)

// ApplicationError is embedded by every typed error in wallpick. It carries
// a message, an optional cause and a kind.
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

func base(msg string, kind ErrorKind, err error) ApplicationError {
	return ApplicationError{msg: msg, err: err, kind: kind}
}

func (e *ApplicationError) Error() string {
	return e.about("")
}

// about formats "msg[: subject][: cause]".
func (e *ApplicationError) about(subject string) string {
	parts := e.msg
	if subject != "" {
		parts += ": " + subject
	}
	if e.err != nil {
		parts = fmt.Sprintf("%s: %v", parts, e.err)
	}
	return parts
}

func (e *ApplicationError) Unwrap() error { return e.err }

// Kind reports the error kind.
func (e *ApplicationError) Kind() ErrorKind { return e.kind }

// FileError is a failure tied to a path on disk, such as a missing wallpaper
// directory or an image argument that is not a regular file.
type FileError struct {
	ApplicationError
	path string
}

func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{ApplicationError: base(msg, kind, err), path: path}
}

func (e *FileError) Error() string { return e.about(e.path) }

// Path is the file or directory the error is about.
func (e *FileError) Path() string { return e.path }

// ConfigError names the config key that failed validation or loading.
type ConfigError struct {
	ApplicationError
	param string
}

func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{ApplicationError: base(msg, kind, err), param: param}
}

func (e *ConfigError) Error() string { return e.about(e.param) }

// Param is the dotted config key, e.g. "preview.cache_capacity".
func (e *ConfigError) Param() string { return e.param }

// DecodeError is reported when an image cannot be turned into a preview.
// It always carries the path of the image that failed.
type DecodeError struct {
	ApplicationError
	path string
}

// NewDecodeError creates a new decode error for path.
func NewDecodeError(path string, kind ErrorKind, err error) *DecodeError {
	return &DecodeError{ApplicationError: base("cannot preview image", kind, err), path: path}
}

func (e *DecodeError) Error() string {
	return e.about(e.path + ": " + e.kind.String())
}

func (e *DecodeError) Path() string { return e.path }

// CompositorError represents a failure of the external wallpaper tool.
type CompositorError struct {
	ApplicationError
	backend string
	output  string
}

// NewCompositorError creates a new compositor error. output is whatever the
// tool printed, and may be empty.
func NewCompositorError(backend, msg, output string, kind ErrorKind, err error) *CompositorError {
	return &CompositorError{ApplicationError: base(msg, kind, err), backend: backend, output: output}
}

func (e *CompositorError) Error() string {
	return e.backend + ": " + e.about(e.output)
}

// Backend is the name of the backend that failed, e.g. "hyprpaper".
func (e *CompositorError) Backend() string { return e.backend }

// Output is what the tool printed, possibly empty.
func (e *CompositorError) Output() string { return e.output }

// New returns an untyped error.
func New(msg string) error {
	return &ApplicationError{msg: msg}
}

func Newf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap adds context to err. It returns nil when err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// KindOf returns the first known kind in err's chain, skipping plain
// wrappers, or Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsFileNotFound reports a missing file or directory, whether it surfaced
// from the scanner or from the decoder.
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) && fileErr.Kind() == FileNotFound {
		return true
	}
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr) && decodeErr.Kind() == FileNotFound
}

func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr) && configErr.Kind() == InvalidConfig
}

func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsCompositorError reports a failure of the external wallpaper tool.
func IsCompositorError(err error) bool {
	var compErr *CompositorError
	return errors.As(err, &compErr)
}

func IsWorkerStopped(err error) bool {
	return errors.Is(err, ErrWorkerStopped)
}
