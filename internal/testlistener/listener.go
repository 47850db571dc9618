package testlistener

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	bannerEmittedMessageConstant          = "status banner emitted"
	bannerEvaluationFailedMessageConstant = "status banner evaluation failed"
	bannerSkippedMessageConstant          = "status banner skipped: evaluator not configured"
	logFieldTestConstant                  = "test"
	logFieldStatusConstant                = "status"
	logFieldElapsedConstant               = "elapsed"
)

// Listener receives test lifecycle notifications.
type Listener interface {
	OnTestStart(executionContext context.Context, result TestResult)
	OnTestSuccess(executionContext context.Context, result TestResult)
	OnTestFailure(executionContext context.Context, result TestResult)
	OnTestSkipped(executionContext context.Context, result TestResult)
	OnTestFailedButWithinSuccessPercentage(executionContext context.Context, result TestResult)
}

// Evaluator runs a script in the top-level frame of the page under test.
type Evaluator interface {
	Evaluate(executionContext context.Context, script string) error
}

// ConsoleListener emits a status banner into the browser console for every notification.
type ConsoleListener struct {
	logger    *zap.Logger
	evaluator Evaluator
	renderer  *BannerRenderer
}

// NewConsoleListener constructs a listener. A nil evaluator turns every
// notification into a no-op, and a nil renderer uses the default status names.
func NewConsoleListener(logger *zap.Logger, evaluator Evaluator, renderer *BannerRenderer) *ConsoleListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = NewBannerRenderer(NewStatusNames())
	}
	return &ConsoleListener{logger: logger, evaluator: evaluator, renderer: renderer}
}

// OnTestStart implements Listener.
func (listener *ConsoleListener) OnTestStart(executionContext context.Context, result TestResult) {
	listener.logStatus(executionContext, result, StatusStarted)
}

// OnTestSuccess implements Listener.
func (listener *ConsoleListener) OnTestSuccess(executionContext context.Context, result TestResult) {
	listener.logStatus(executionContext, result, StatusSuccess)
}

// OnTestFailure implements Listener.
func (listener *ConsoleListener) OnTestFailure(executionContext context.Context, result TestResult) {
	listener.logStatus(executionContext, result, StatusFailure)
}

// OnTestSkipped implements Listener.
func (listener *ConsoleListener) OnTestSkipped(executionContext context.Context, result TestResult) {
	listener.logStatus(executionContext, result, StatusSkip)
}

// OnTestFailedButWithinSuccessPercentage implements Listener.
func (listener *ConsoleListener) OnTestFailedButWithinSuccessPercentage(executionContext context.Context, result TestResult) {
	listener.logStatus(executionContext, result, StatusFailurePercentage)
}

// logStatus never returns evaluation failures; a broken browser session must not fail the test run.
func (listener *ConsoleListener) logStatus(executionContext context.Context, result TestResult, status Status) {
	if listener == nil {
		return
	}

	result.Status = status
	qualifiedName := result.Identity.QualifiedName()

	if listener.evaluator == nil {
		listener.logger.Debug(bannerSkippedMessageConstant, zap.String(logFieldTestConstant, qualifiedName))
		return
	}

	if executionContext == nil {
		executionContext = context.Background()
	}

	script := listener.renderer.Script(result)
	statusName, _ := listener.renderer.statusNames.Name(status)

	if evaluationError := listener.evaluator.Evaluate(executionContext, script); evaluationError != nil {
		listener.logger.Warn(
			bannerEvaluationFailedMessageConstant,
			zap.String(logFieldTestConstant, qualifiedName),
			zap.String(logFieldStatusConstant, statusName),
			zap.Error(evaluationError),
		)
		return
	}

	listener.logger.Debug(
		bannerEmittedMessageConstant,
		zap.String(logFieldTestConstant, qualifiedName),
		zap.String(logFieldStatusConstant, statusName),
		zap.Duration(logFieldElapsedConstant, result.Elapsed.Round(time.Millisecond)),
	)
}
