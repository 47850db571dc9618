package testevents

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/graphene/internal/testlistener"
)

const (
	scannerInitialBufferSizeConstant = 64 * 1024
	scannerMaximumLineSizeConstant   = 16 * 1024 * 1024
	streamReadErrorTemplateConstant  = "unable to read test event stream: %w"
	echoWriteErrorTemplateConstant   = "unable to echo test output: %w"
	lineTerminatorConstant           = "\n"
	packageFinishedMessageConstant   = "package finished"
	streamFinishedMessageConstant    = "test event stream finished"
	logFieldPackageConstant          = "package"
	logFieldActionConstant           = "action"
	logFieldElapsedConstant          = "elapsed"
	logFieldStartedConstant          = "started"
	logFieldPassedConstant           = "passed"
	logFieldFailedConstant           = "failed"
	logFieldSkippedConstant          = "skipped"
	logFieldPackagesConstant         = "packages"
)

// Summary counts what a relay observed.
type Summary struct {
	Started        int
	Passed         int
	Failed         int
	Skipped        int
	Packages       int
	FailedPackages int
	UnparsedLines  int
}

// Relay forwards test lifecycle events to a listener and echoes test output.
type Relay struct {
	listener testlistener.Listener
	echo     io.Writer
	logger   *zap.Logger
}

// NewRelay constructs a relay. A nil listener only counts events and a nil echo
// writer discards output.
func NewRelay(listener testlistener.Listener, echo io.Writer, logger *zap.Logger) *Relay {
	if echo == nil {
		echo = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{listener: listener, echo: echo, logger: logger}
}

// Consume reads the stream until EOF or context cancellation. Lines that are not
// test events are echoed verbatim. Package-level results are counted but never
// forwarded to the listener.
func (relay *Relay) Consume(executionContext context.Context, reader io.Reader) (Summary, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	summary := Summary{}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, scannerInitialBufferSizeConstant), scannerMaximumLineSizeConstant)

	for scanner.Scan() {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, contextError
		}

		line := scanner.Bytes()
		event, decodeError := DecodeEvent(bytes.TrimSpace(line))
		if decodeError != nil {
			summary.UnparsedLines++
			if echoError := relay.writeEcho(string(line) + lineTerminatorConstant); echoError != nil {
				return summary, echoError
			}
			continue
		}

		if handleError := relay.handleEvent(executionContext, event, &summary); handleError != nil {
			return summary, handleError
		}
	}

	if scanError := scanner.Err(); scanError != nil {
		return summary, fmt.Errorf(streamReadErrorTemplateConstant, scanError)
	}

	relay.logger.Debug(
		streamFinishedMessageConstant,
		zap.Int(logFieldStartedConstant, summary.Started),
		zap.Int(logFieldPassedConstant, summary.Passed),
		zap.Int(logFieldFailedConstant, summary.Failed),
		zap.Int(logFieldSkippedConstant, summary.Skipped),
		zap.Int(logFieldPackagesConstant, summary.Packages),
	)

	return summary, nil
}

func (relay *Relay) handleEvent(executionContext context.Context, event Event, summary *Summary) error {
	if event.Action == ActionOutput {
		return relay.writeEcho(event.Output)
	}

	if !event.IsTestEvent() {
		relay.countPackageEvent(event, summary)
		return nil
	}

	result := testlistener.TestResult{
		Identity: testlistener.Identity{Package: event.Package, Name: event.Test},
		Elapsed:  event.ElapsedDuration(),
	}

	switch event.Action {
	case ActionRun:
		summary.Started++
		if relay.listener != nil {
			relay.listener.OnTestStart(executionContext, result)
		}
	case ActionPass:
		summary.Passed++
		if relay.listener != nil {
			relay.listener.OnTestSuccess(executionContext, result)
		}
	case ActionFail:
		summary.Failed++
		if relay.listener != nil {
			relay.listener.OnTestFailure(executionContext, result)
		}
	case ActionSkip:
		summary.Skipped++
		if relay.listener != nil {
			relay.listener.OnTestSkipped(executionContext, result)
		}
	}

	return nil
}

func (relay *Relay) countPackageEvent(event Event, summary *Summary) {
	switch event.Action {
	case ActionPass, ActionSkip:
		summary.Packages++
	case ActionFail:
		summary.Packages++
		summary.FailedPackages++
	default:
		return
	}

	relay.logger.Debug(
		packageFinishedMessageConstant,
		zap.String(logFieldPackageConstant, event.Package),
		zap.String(logFieldActionConstant, string(event.Action)),
		zap.Duration(logFieldElapsedConstant, event.ElapsedDuration()),
	)
}

func (relay *Relay) writeEcho(text string) error {
	if len(text) == 0 {
		return nil
	}
	if _, writeError := io.WriteString(relay.echo, text); writeError != nil {
		return fmt.Errorf(echoWriteErrorTemplateConstant, writeError)
	}
	return nil
}
