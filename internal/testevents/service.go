package testevents

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/graphene/internal/execshell"
)

const (
	testCommandFailedMessageConstant   = "test command failed"
	missingInputMessageConstant        = "no test event input configured"
	testCommandFailureTemplateConstant = "%w: %w"
	relayStartedMessageConstant        = "relaying test events"
	logFieldSourceConstant             = "source"
	logFieldCommandConstant            = "command"
	sourceStandardInputConstant        = "stdin"
	sourceCommandConstant              = "command"
)

// ErrTestCommandFailed reports a test command that exited with a non-zero code.
// The event stream is fully relayed before it is returned.
var ErrTestCommandFailed = errors.New(testCommandFailedMessageConstant)

// ErrMissingInput indicates that neither a command nor an input stream was supplied.
var ErrMissingInput = errors.New(missingInputMessageConstant)

// CommandExecutor runs shell commands.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// RunOptions selects the event source. A non-empty Command is launched and its
// standard output relayed; otherwise Input is consumed.
type RunOptions struct {
	Command          []string
	WorkingDirectory string
	Input            io.Reader
}

// Service connects event sources to a relay.
type Service struct {
	relay    *Relay
	executor CommandExecutor
	logger   *zap.Logger
}

// NewService constructs a service.
func NewService(relay *Relay, executor CommandExecutor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{relay: relay, executor: executor, logger: logger}
}

// Run relays events from the configured source and returns the relay summary.
func (service *Service) Run(executionContext context.Context, options RunOptions) (Summary, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	if len(options.Command) == 0 {
		if options.Input == nil {
			return Summary{}, ErrMissingInput
		}
		service.logger.Debug(relayStartedMessageConstant, zap.String(logFieldSourceConstant, sourceStandardInputConstant))
		return service.relay.Consume(executionContext, options.Input)
	}

	return service.runCommand(executionContext, options)
}

// runCommand streams the command's standard output through a pipe into the relay.
// A non-zero exit does not cancel the relay so that trailing events are still delivered.
func (service *Service) runCommand(executionContext context.Context, options RunOptions) (Summary, error) {
	service.logger.Debug(
		relayStartedMessageConstant,
		zap.String(logFieldSourceConstant, sourceCommandConstant),
		zap.Strings(logFieldCommandConstant, options.Command),
	)

	pipeReader, pipeWriter := io.Pipe()
	group, groupContext := errgroup.WithContext(executionContext)

	var commandFailure error
	group.Go(func() error {
		shellCommand := execshell.ShellCommand{
			Name: execshell.CommandName(options.Command[0]),
			Details: execshell.CommandDetails{
				Arguments:            options.Command[1:],
				WorkingDirectory:     options.WorkingDirectory,
				StandardOutputStream: pipeWriter,
			},
		}

		_, executionError := service.executor.Execute(groupContext, shellCommand)
		pipeWriter.Close()

		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			commandFailure = executionError
			return nil
		}
		return executionError
	})

	var summary Summary
	group.Go(func() error {
		var consumeError error
		summary, consumeError = service.relay.Consume(groupContext, pipeReader)
		if consumeError != nil {
			pipeReader.CloseWithError(consumeError)
			return consumeError
		}
		_, drainError := io.Copy(io.Discard, pipeReader)
		return drainError
	})

	if groupError := group.Wait(); groupError != nil {
		return summary, groupError
	}
	if commandFailure != nil {
		return summary, fmt.Errorf(testCommandFailureTemplateConstant, ErrTestCommandFailed, commandFailure)
	}
	return summary, nil
}
