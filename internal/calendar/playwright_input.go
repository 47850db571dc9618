package calendar

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightInput adapts a playwright locator to InputElement.
type PlaywrightInput struct {
	locator playwright.Locator
}

// NewPlaywrightInput wraps locator.
func NewPlaywrightInput(locator playwright.Locator) *PlaywrightInput {
	return &PlaywrightInput{locator: locator}
}

// Value returns the current input value.
func (input *PlaywrightInput) Value(executionContext context.Context) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}
	return input.locator.InputValue()
}

// SetValue fills the input, replacing its previous content.
func (input *PlaywrightInput) SetValue(executionContext context.Context, value string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	return input.locator.Fill(value)
}
