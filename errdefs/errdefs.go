// Package errdefs - Error kinds shared by the demo pipeline.
//
// Every failure surfaced by the pipeline wraps one of the sentinel kinds
// below, so callers can classify an error with errors.Is without caring
// which component produced it.
package errdefs

import "github.com/pkg/errors"

var (
	// ErrConfig marks bad or empty user input: prompts, flags, model config.
	ErrConfig = errors.New("config error")
	// ErrModelLoad marks a missing or unloadable checkpoint or runtime library.
	ErrModelLoad = errors.New("model load error")
	// ErrIO marks an unreadable input image or unwritable output.
	ErrIO = errors.New("io error")
	// ErrCompute marks a failure during inference execution (e.g. the
	// requested accelerator is absent).
	ErrCompute = errors.New("compute error")
)

// Config wraps ErrConfig with a formatted message.
func Config(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, format, args...)
}

// ModelLoad wraps ErrModelLoad with a formatted message.
func ModelLoad(format string, args ...interface{}) error {
	return errors.Wrapf(ErrModelLoad, format, args...)
}

// IO wraps ErrIO with a formatted message.
func IO(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIO, format, args...)
}

// Compute wraps ErrCompute with a formatted message.
func Compute(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCompute, format, args...)
}
