package calendar

import (
	"context"

	"github.com/chromedp/chromedp"
)

// ChromeInput adapts a CSS selector in a chromedp browser context to InputElement.
// The context passed to Value and SetValue must descend from a chromedp context.
type ChromeInput struct {
	selector string
}

// NewChromeInput targets the first element matching selector.
func NewChromeInput(selector string) *ChromeInput {
	return &ChromeInput{selector: selector}
}

// Value returns the value property of the input.
func (input *ChromeInput) Value(executionContext context.Context) (string, error) {
	var value string
	if runError := chromedp.Run(executionContext, chromedp.Value(input.selector, &value, chromedp.ByQuery)); runError != nil {
		return "", runError
	}
	return value, nil
}

// SetValue replaces the value property of the input.
func (input *ChromeInput) SetValue(executionContext context.Context, value string) error {
	return chromedp.Run(executionContext, chromedp.SetValue(input.selector, value, chromedp.ByQuery))
}
