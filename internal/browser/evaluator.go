package browser

import (
	"context"
	"errors"
)

// ErrUnsupportedDriver indicates that the configured driver name is unknown.
var ErrUnsupportedDriver = errors.New("unsupported browser driver")

// ErrSessionClosed indicates that a script was submitted after Close.
var ErrSessionClosed = errors.New("browser session closed")

// Evaluator runs a script in the top-level frame of the page under test.
type Evaluator interface {
	Evaluate(executionContext context.Context, script string) error
}

// Session is an evaluator that owns browser resources.
type Session interface {
	Evaluator
	Close() error
}
