package calendar

import (
	"context"
	"errors"
	"time"
)

const (
	noDateSelectedMessageConstant = "no date selected"
	inputElementMissingMessage    = "calendar input element is not configured"
	zeroDateMessageConstant       = "calendar date is not set"
)

// DefaultLayout is the layout of HTML date inputs.
const DefaultLayout = time.DateOnly

// ErrNoDateSelected indicates that the calendar input is empty.
var ErrNoDateSelected = errors.New(noDateSelectedMessageConstant)

// ErrInputElementMissing indicates that a calendar was constructed without an input element.
var ErrInputElementMissing = errors.New(inputElementMissingMessage)

// ErrZeroDate indicates an attempt to select the zero time.
var ErrZeroDate = errors.New(zeroDateMessageConstant)

// Component represents any calendar widget.
type Component interface {
	// DateTime returns the date currently held by the calendar input.
	DateTime(executionContext context.Context) (time.Time, error)
	// GotoDateTime selects dateTime and writes it to the calendar input.
	GotoDateTime(executionContext context.Context, dateTime time.Time) error
}
