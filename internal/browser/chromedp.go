package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	chromeStartErrorTemplate    = "could not start chrome: %w"
	chromeEvaluateErrorTemplate = "chromedp evaluation failed: %w"
	chromeHeadlessFlagConstant  = "headless"

	chromeSessionOpenedMessage = "chromedp session opened"
	chromeSessionClosedMessage = "chromedp session closed"
	logFieldRemoteURLConstant  = "remote_url"
)

// ChromeSession evaluates scripts in a Chrome tab driven over the DevTools protocol.
type ChromeSession struct {
	logger          *zap.Logger
	browserContext  context.Context
	cancelBrowser   context.CancelFunc
	cancelAllocator context.CancelFunc
	timeout         time.Duration
}

// NewChromeSession launches a local Chrome, or attaches to remote_url when set,
// and navigates to the start URL.
func NewChromeSession(parentContext context.Context, configuration Configuration, logger *zap.Logger) (*ChromeSession, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parentContext == nil {
		parentContext = context.Background()
	}
	configuration = configuration.Sanitize()

	var allocatorContext context.Context
	var cancelAllocator context.CancelFunc
	if len(configuration.RemoteURL) > 0 {
		allocatorContext, cancelAllocator = chromedp.NewRemoteAllocator(parentContext, configuration.RemoteURL)
	} else {
		allocatorOptions := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag(chromeHeadlessFlagConstant, configuration.Headless))
		allocatorContext, cancelAllocator = chromedp.NewExecAllocator(parentContext, allocatorOptions...)
	}

	browserContext, cancelBrowser := chromedp.NewContext(allocatorContext)

	session := &ChromeSession{
		logger:          logger,
		browserContext:  browserContext,
		cancelBrowser:   cancelBrowser,
		cancelAllocator: cancelAllocator,
		timeout:         configuration.Timeout,
	}

	var startActions []chromedp.Action
	if len(configuration.StartURL) > 0 {
		startActions = append(startActions, chromedp.Navigate(configuration.StartURL))
	}

	// The first Run allocates the browser and must use the long-lived context.
	if runError := chromedp.Run(browserContext, startActions...); runError != nil {
		return nil, errors.Join(fmt.Errorf(chromeStartErrorTemplate, runError), session.Close())
	}

	logger.Info(
		chromeSessionOpenedMessage,
		zap.String(logFieldURLConstant, configuration.StartURL),
		zap.String(logFieldRemoteURLConstant, configuration.RemoteURL),
		zap.Bool(logFieldHeadlessConstant, configuration.Headless),
	)

	return session, nil
}

// Context returns the chromedp context for running further actions in the same tab.
func (session *ChromeSession) Context() context.Context {
	return session.browserContext
}

// Evaluate implements Evaluator.
func (session *ChromeSession) Evaluate(executionContext context.Context, script string) error {
	if session.browserContext == nil {
		return ErrSessionClosed
	}
	if executionContext == nil {
		executionContext = context.Background()
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	evaluationContext, cancelEvaluation := context.WithTimeout(session.browserContext, session.timeout)
	defer cancelEvaluation()
	stopPropagation := context.AfterFunc(executionContext, cancelEvaluation)
	defer stopPropagation()

	if runError := chromedp.Run(evaluationContext, chromedp.Evaluate(script, nil)); runError != nil {
		return fmt.Errorf(chromeEvaluateErrorTemplate, runError)
	}
	return nil
}

// Close cancels the tab and then the allocator.
func (session *ChromeSession) Close() error {
	if session.cancelBrowser != nil {
		session.cancelBrowser()
		session.cancelBrowser = nil
	}
	if session.cancelAllocator != nil {
		session.cancelAllocator()
		session.cancelAllocator = nil
	}
	session.browserContext = nil
	session.logger.Debug(chromeSessionClosedMessage)
	return nil
}
