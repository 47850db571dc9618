// Package browser provides script evaluators for the top-level frame of a page
// driven by playwright-go or chromedp, and an embedded goja runtime for runs
// without a browser.
package browser
