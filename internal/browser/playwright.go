package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const (
	playwrightInstallErrorTemplate    = "could not install playwright browsers: %w"
	playwrightStartErrorTemplate      = "could not start playwright: %w"
	playwrightLaunchErrorTemplate     = "could not launch %s: %w"
	playwrightPageErrorTemplate       = "could not create page: %w"
	playwrightNavigationErrorTemplate = "could not navigate to %s: %w"
	playwrightEvaluateErrorTemplate   = "playwright evaluation failed: %w"
	playwrightUnknownBrowserTemplate  = "unknown playwright browser %q: %w"

	playwrightSessionOpenedMessage = "playwright session opened"
	playwrightSessionClosedMessage = "playwright session closed"
	logFieldBrowserConstant        = "browser"
	logFieldURLConstant            = "url"
	logFieldHeadlessConstant       = "headless"
)

// PlaywrightSession evaluates scripts in the main frame of a playwright page.
type PlaywrightSession struct {
	logger             *zap.Logger
	playwrightInstance *playwright.Playwright
	browserInstance    playwright.Browser
	page               playwright.Page
}

// NewPlaywrightSession starts playwright, launches the configured browser and opens a page.
func NewPlaywrightSession(configuration Configuration, logger *zap.Logger) (*PlaywrightSession, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	configuration = configuration.Sanitize()

	if !configuration.Preinstalled {
		installOptions := &playwright.RunOptions{Browsers: []string{configuration.BrowserName}}
		if installError := playwright.Install(installOptions); installError != nil {
			return nil, fmt.Errorf(playwrightInstallErrorTemplate, installError)
		}
	}

	playwrightInstance, runError := playwright.Run()
	if runError != nil {
		return nil, fmt.Errorf(playwrightStartErrorTemplate, runError)
	}

	session := &PlaywrightSession{logger: logger, playwrightInstance: playwrightInstance}

	browserType, browserTypeError := selectBrowserType(playwrightInstance, configuration.BrowserName)
	if browserTypeError != nil {
		return nil, errors.Join(browserTypeError, session.Close())
	}

	browserInstance, launchError := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(configuration.Headless),
	})
	if launchError != nil {
		return nil, errors.Join(fmt.Errorf(playwrightLaunchErrorTemplate, configuration.BrowserName, launchError), session.Close())
	}
	session.browserInstance = browserInstance

	page, pageError := browserInstance.NewPage()
	if pageError != nil {
		return nil, errors.Join(fmt.Errorf(playwrightPageErrorTemplate, pageError), session.Close())
	}
	session.page = page
	page.SetDefaultTimeout(float64(configuration.Timeout.Milliseconds()))

	if len(configuration.StartURL) > 0 {
		if _, navigationError := page.Goto(configuration.StartURL); navigationError != nil {
			return nil, errors.Join(fmt.Errorf(playwrightNavigationErrorTemplate, configuration.StartURL, navigationError), session.Close())
		}
	}

	logger.Info(
		playwrightSessionOpenedMessage,
		zap.String(logFieldBrowserConstant, configuration.BrowserName),
		zap.String(logFieldURLConstant, configuration.StartURL),
		zap.Bool(logFieldHeadlessConstant, configuration.Headless),
	)

	return session, nil
}

// Page exposes the underlying page for element lookups.
func (session *PlaywrightSession) Page() playwright.Page {
	return session.page
}

// Evaluate implements Evaluator.
func (session *PlaywrightSession) Evaluate(executionContext context.Context, script string) error {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
	}
	if session.page == nil {
		return ErrSessionClosed
	}

	if _, evaluationError := session.page.MainFrame().Evaluate(script); evaluationError != nil {
		return fmt.Errorf(playwrightEvaluateErrorTemplate, evaluationError)
	}
	return nil
}

// Close releases page, browser and driver in reverse order of creation.
func (session *PlaywrightSession) Close() error {
	var closeErrors []error

	if session.page != nil {
		closeErrors = append(closeErrors, session.page.Close())
		session.page = nil
	}
	if session.browserInstance != nil {
		closeErrors = append(closeErrors, session.browserInstance.Close())
		session.browserInstance = nil
	}
	if session.playwrightInstance != nil {
		closeErrors = append(closeErrors, session.playwrightInstance.Stop())
		session.playwrightInstance = nil
	}

	session.logger.Debug(playwrightSessionClosedMessage)
	return errors.Join(closeErrors...)
}

func selectBrowserType(playwrightInstance *playwright.Playwright, browserName string) (playwright.BrowserType, error) {
	switch browserName {
	case BrowserChromium:
		return playwrightInstance.Chromium, nil
	case BrowserFirefox:
		return playwrightInstance.Firefox, nil
	case BrowserWebKit:
		return playwrightInstance.WebKit, nil
	default:
		return nil, fmt.Errorf(playwrightUnknownBrowserTemplate, browserName, ErrUnsupportedDriver)
	}
}
