package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	readValueErrorTemplate  = "unable to read calendar input: %w"
	writeValueErrorTemplate = "unable to write calendar input: %w"
	parseValueErrorTemplate = "unable to parse calendar value %q with layout %q: %w"
)

// InputElement is a text input holding the calendar value.
type InputElement interface {
	Value(executionContext context.Context) (string, error)
	SetValue(executionContext context.Context, value string) error
}

// InputCalendar implements Component for calendars whose selected date lives in a text input.
type InputCalendar struct {
	element  InputElement
	layout   string
	location *time.Location
}

// NewInputCalendar constructs a calendar over element. An empty layout selects
// DefaultLayout and a nil location selects time.Local.
func NewInputCalendar(element InputElement, layout string, location *time.Location) (*InputCalendar, error) {
	if element == nil {
		return nil, ErrInputElementMissing
	}
	if len(strings.TrimSpace(layout)) == 0 {
		layout = DefaultLayout
	}
	if location == nil {
		location = time.Local
	}
	return &InputCalendar{element: element, layout: layout, location: location}, nil
}

// Layout returns the layout used to read and write the input.
func (calendar *InputCalendar) Layout() string {
	return calendar.layout
}

// DateTime implements Component.
func (calendar *InputCalendar) DateTime(executionContext context.Context) (time.Time, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	rawValue, readError := calendar.element.Value(executionContext)
	if readError != nil {
		return time.Time{}, fmt.Errorf(readValueErrorTemplate, readError)
	}

	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return time.Time{}, ErrNoDateSelected
	}

	dateTime, parseError := time.ParseInLocation(calendar.layout, trimmedValue, calendar.location)
	if parseError != nil {
		return time.Time{}, fmt.Errorf(parseValueErrorTemplate, trimmedValue, calendar.layout, parseError)
	}
	return dateTime, nil
}

// GotoDateTime implements Component. The date is converted to the calendar location before formatting.
func (calendar *InputCalendar) GotoDateTime(executionContext context.Context, dateTime time.Time) error {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if dateTime.IsZero() {
		return ErrZeroDate
	}

	formattedValue := dateTime.In(calendar.location).Format(calendar.layout)
	if writeError := calendar.element.SetValue(executionContext, formattedValue); writeError != nil {
		return fmt.Errorf(writeValueErrorTemplate, writeError)
	}
	return nil
}
