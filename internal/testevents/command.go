package testevents

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/graphene/internal/browser"
	"github.com/temirov/graphene/internal/execshell"
	"github.com/temirov/graphene/internal/testlistener"
	"github.com/temirov/graphene/internal/ui"
	"github.com/temirov/graphene/internal/utils"
	"github.com/temirov/graphene/internal/utils/flags"
	pathutils "github.com/temirov/graphene/internal/utils/path"
)

const (
	commandUseConstant                    = "relay [flags] [-- command [argument...]]"
	commandShortDescriptionConstant       = "Relay go test -json events into a browser console"
	commandLongDescriptionConstant        = "relay reads the go test -json event stream from standard input or from the command given after --, and emits a status banner into the browser console for every test start, pass, failure and skip."
	commandExampleConstant                = "  graphene relay --driver chromedp --url http://localhost:8080 -- go test -json ./e2e/...\n  go test -json ./... | graphene relay --driver script"
	commandExecutionErrorTemplateConstant = "relay failed: %w"
	sessionOpenErrorTemplateConstant      = "unable to open browser session: %w"
	sessionCloseFailedMessageConstant     = "browser session close failed"
	relayCompletedMessageConstant         = "test events relayed"
	flagDriverNameConstant                = "driver"
	flagDriverDescriptionConstant         = "Evaluator receiving the status banners."
	flagURLNameConstant                   = "url"
	flagURLDescriptionConstant            = "Page opened before the first banner is emitted."
	flagRemoteURLNameConstant             = "remote-url"
	flagRemoteURLDescriptionConstant      = "DevTools endpoint of a running Chrome (chromedp driver)."
	flagBrowserNameConstant               = "browser"
	flagBrowserDescriptionConstant        = "Browser launched by the playwright driver."
	flagHeadlessNameConstant              = "headless"
	flagHeadlessDescriptionConstant       = "Run the browser without a window."
	flagEchoNameConstant                  = "echo"
	flagEchoDescriptionConstant           = "Echo test output to standard output."
	logFieldFailedPackagesConstant        = "failed_packages"
	logFieldUnparsedLinesConstant         = "unparsed_lines"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the relay configuration loaded for the application.
type ConfigurationProvider func() CommandConfiguration

// SessionOpener opens the browser session receiving the banners.
type SessionOpener func(executionContext context.Context, configuration browser.Configuration, logger *zap.Logger, output io.Writer) (browser.Session, error)

// CommandBuilder assembles the Cobra command for relaying test events.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	SessionOpener                SessionOpener
	Executor                     CommandExecutor
}

// Build constructs the relay command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	defaults := DefaultCommandConfiguration()
	var driverValue string
	var browserValue string
	var headlessValue bool
	var echoValue bool
	flags.AddChoiceFlag(command.Flags(), &driverValue, flagDriverNameConstant, defaults.Browser.Driver, []string{browser.DriverScript, browser.DriverPlaywright, browser.DriverChromedp}, flagDriverDescriptionConstant)
	flags.AddChoiceFlag(command.Flags(), &browserValue, flagBrowserNameConstant, defaults.Browser.BrowserName, []string{browser.BrowserChromium, browser.BrowserFirefox, browser.BrowserWebKit}, flagBrowserDescriptionConstant)
	command.Flags().String(flagURLNameConstant, "", flagURLDescriptionConstant)
	command.Flags().String(flagRemoteURLNameConstant, "", flagRemoteURLDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), &headlessValue, flagHeadlessNameConstant, "", defaults.Browser.Headless, flagHeadlessDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), &echoValue, flagEchoNameConstant, "", defaults.Echo, flagEchoDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration())

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	session, openError := builder.resolveSessionOpener()(executionContext, configuration.Browser, logger, outputWriter)
	if openError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, fmt.Errorf(sessionOpenErrorTemplateConstant, openError))
	}
	defer func() {
		if closeError := session.Close(); closeError != nil {
			logger.Warn(sessionCloseFailedMessageConstant, zap.Error(closeError))
		}
	}()

	listener := testlistener.NewConsoleListener(logger, session, testlistener.NewBannerRenderer(testlistener.NewStatusNames()))

	echoWriter := io.Discard
	if configuration.Echo {
		echoWriter = outputWriter
	}
	relay := NewRelay(listener, echoWriter, logger)

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executorError)
	}

	testCommand := arguments
	if len(testCommand) == 0 {
		testCommand = configuration.Command
	}

	service := NewService(relay, executor, logger)
	summary, runError := service.Run(executionContext, RunOptions{
		Command:          testCommand,
		WorkingDirectory: resolveWorkingDirectory(executionContext, configuration.WorkingDirectory),
		Input:            command.InOrStdin(),
	})

	logger.Info(
		relayCompletedMessageConstant,
		zap.Int(logFieldStartedConstant, summary.Started),
		zap.Int(logFieldPassedConstant, summary.Passed),
		zap.Int(logFieldFailedConstant, summary.Failed),
		zap.Int(logFieldSkippedConstant, summary.Skipped),
		zap.Int(logFieldPackagesConstant, summary.Packages),
		zap.Int(logFieldFailedPackagesConstant, summary.FailedPackages),
		zap.Int(logFieldUnparsedLinesConstant, summary.UnparsedLines),
	)

	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

// applyFlagOverrides replaces configuration values with explicitly set flags.
func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	overridden := configuration
	commandFlags := command.Flags()

	if commandFlags.Changed(flagDriverNameConstant) {
		overridden.Browser.Driver = commandFlags.Lookup(flagDriverNameConstant).Value.String()
	}
	if commandFlags.Changed(flagBrowserNameConstant) {
		overridden.Browser.BrowserName = commandFlags.Lookup(flagBrowserNameConstant).Value.String()
	}
	if commandFlags.Changed(flagURLNameConstant) {
		overridden.Browser.StartURL, _ = commandFlags.GetString(flagURLNameConstant)
	}
	if commandFlags.Changed(flagRemoteURLNameConstant) {
		overridden.Browser.RemoteURL, _ = commandFlags.GetString(flagRemoteURLNameConstant)
	}
	if commandFlags.Changed(flagHeadlessNameConstant) {
		overridden.Browser.Headless, _ = commandFlags.GetBool(flagHeadlessNameConstant)
	}
	if commandFlags.Changed(flagEchoNameConstant) {
		overridden.Echo, _ = commandFlags.GetBool(flagEchoNameConstant)
	}

	return overridden.sanitize()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveSessionOpener() SessionOpener {
	if builder.SessionOpener != nil {
		return builder.SessionOpener
	}
	return browser.OpenSession
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}

	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		consoleLogger := logger
		if builder.ConsoleLoggerProvider != nil && builder.ConsoleLoggerProvider() != nil {
			consoleLogger = builder.ConsoleLoggerProvider()
		}
		shellExecutor.AddObserver(ui.NewConsoleCommandEventLogger(consoleLogger))
	}
	return shellExecutor, nil
}

// resolveWorkingDirectory anchors a relative working directory at the directory of the configuration file in use.
func resolveWorkingDirectory(executionContext context.Context, workingDirectory string) string {
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(executionContext)
	return pathutils.NewDirectoryResolver().Resolve(workingDirectory, configurationFilePath)
}
