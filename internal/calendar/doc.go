// Package calendar reads and selects dates in calendar widgets of the page under test.
//
// Component is the widget-neutral contract. InputCalendar implements it for
// calendars backed by a text input, with element adapters for playwright-go
// locators and chromedp selectors.
package calendar
