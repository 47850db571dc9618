package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

const (
	consoleObjectNameConstant         = "console"
	consoleArgumentSeparatorConstant  = " "
	scriptEvaluationErrorTemplate     = "script evaluation failed: %w"
	consoleInstallationErrorTemplate  = "unable to install console.%s: %w"
	consoleRegistrationErrorTemplate  = "unable to register console object: %w"
	scriptEvaluatorClosedErrorMessage = "script evaluator closed"
)

var consoleMethodNames = []string{"log", "info", "warn", "error", "debug"}

// ScriptEvaluator runs scripts in an embedded JavaScript runtime. Every console
// call writes one line to the configured writer.
type ScriptEvaluator struct {
	mutex        sync.Mutex
	runtime      *goja.Runtime
	output       io.Writer
	consoleLines []string
	closed       bool
}

// NewScriptEvaluator constructs an evaluator writing console output to output.
func NewScriptEvaluator(output io.Writer) (*ScriptEvaluator, error) {
	if output == nil {
		output = io.Discard
	}

	evaluator := &ScriptEvaluator{runtime: goja.New(), output: output}

	console := evaluator.runtime.NewObject()
	for _, methodName := range consoleMethodNames {
		if setError := console.Set(methodName, evaluator.writeConsoleLine); setError != nil {
			return nil, fmt.Errorf(consoleInstallationErrorTemplate, methodName, setError)
		}
	}
	if setError := evaluator.runtime.Set(consoleObjectNameConstant, console); setError != nil {
		return nil, fmt.Errorf(consoleRegistrationErrorTemplate, setError)
	}

	return evaluator, nil
}

// Evaluate implements Evaluator. Cancelling the context interrupts a running script.
func (evaluator *ScriptEvaluator) Evaluate(executionContext context.Context, script string) error {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	evaluator.mutex.Lock()
	defer evaluator.mutex.Unlock()

	if evaluator.closed {
		return fmt.Errorf("%s: %w", scriptEvaluatorClosedErrorMessage, ErrSessionClosed)
	}

	stopInterrupt := context.AfterFunc(executionContext, func() {
		evaluator.runtime.Interrupt(executionContext.Err())
	})
	defer func() {
		stopInterrupt()
		evaluator.runtime.ClearInterrupt()
	}()

	if _, runError := evaluator.runtime.RunString(script); runError != nil {
		return fmt.Errorf(scriptEvaluationErrorTemplate, runError)
	}
	return nil
}

// ConsoleLines returns the console lines written so far.
func (evaluator *ScriptEvaluator) ConsoleLines() []string {
	evaluator.mutex.Lock()
	defer evaluator.mutex.Unlock()

	lines := make([]string, len(evaluator.consoleLines))
	copy(lines, evaluator.consoleLines)
	return lines
}

// Close implements Session.
func (evaluator *ScriptEvaluator) Close() error {
	evaluator.mutex.Lock()
	defer evaluator.mutex.Unlock()

	evaluator.closed = true
	return nil
}

// writeConsoleLine runs on the goroutine holding the mutex inside Evaluate.
func (evaluator *ScriptEvaluator) writeConsoleLine(call goja.FunctionCall) goja.Value {
	renderedArguments := make([]string, 0, len(call.Arguments))
	for _, argument := range call.Arguments {
		renderedArguments = append(renderedArguments, argument.String())
	}

	line := strings.Join(renderedArguments, consoleArgumentSeparatorConstant)
	evaluator.consoleLines = append(evaluator.consoleLines, line)
	fmt.Fprintln(evaluator.output, line)

	return goja.Undefined()
}
