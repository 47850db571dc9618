package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	flagPrefixConstant                      = "-"
)

const (
	goTestSubcommandNameConstant    = "test"
	goVersionSubcommandNameConstant = "version"
	goJSONFlagConstant              = "-json"
	goCurrentPackageLabelConstant   = "the current package"
	goPackageListSeparatorConstant  = ", "
)

const (
	goTestStartTemplateConstant               = "Running tests for %s in %s"
	goTestStreamingStartTemplateConstant      = "Streaming test events for %s in %s"
	goTestSuccessTemplateConstant             = "Tests passed for %s in %s"
	goTestFailureTemplateConstant             = "Tests failed for %s in %s (exit code %d%s)"
	goTestExecutionFailureTemplateConstant    = "Unable to run tests for %s in %s: %s"
	goVersionStartTemplateConstant            = "Checking Go toolchain version in %s"
	goVersionSuccessTemplateConstant          = "Go toolchain available in %s"
	goVersionFailureTemplateConstant          = "Go toolchain unavailable in %s (exit code %d%s)"
	goVersionExecutionFailureTemplateConstant = "Unable to check Go toolchain in %s: %s"
)

// goTestValueFlags consume the following argument when written without "=".
var goTestValueFlags = map[string]struct{}{
	"-run":          {},
	"-skip":         {},
	"-count":        {},
	"-timeout":      {},
	"-tags":         {},
	"-p":            {},
	"-parallel":     {},
	"-bench":        {},
	"-benchtime":    {},
	"-cpu":          {},
	"-coverprofile": {},
	"-coverpkg":     {},
	"-o":            {},
	"-exec":         {},
	"-shuffle":      {},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGo:
		return formatter.describeGoMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGoMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case goTestSubcommandNameConstant:
		return formatter.describeGoTestMessage(command, result, failure, stage)
	case goVersionSubcommandNameConstant:
		return formatter.describeGoVersionMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGoTestMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	packagesLabel := formatter.describePackages(command.Details.Arguments[1:])
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		if containsArgument(command.Details.Arguments, goJSONFlagConstant) {
			return fmt.Sprintf(goTestStreamingStartTemplateConstant, packagesLabel, workingDirectory)
		}
		return fmt.Sprintf(goTestStartTemplateConstant, packagesLabel, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(goTestSuccessTemplateConstant, packagesLabel, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(goTestFailureTemplateConstant, packagesLabel, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(goTestExecutionFailureTemplateConstant, packagesLabel, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeGoVersionMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(goVersionStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(goVersionSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(goVersionFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(goVersionExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

// describePackages lists the package patterns of a go test invocation, skipping flags and their values.
func (formatter CommandMessageFormatter) describePackages(arguments []string) string {
	packagePatterns := []string{}
	skipNext := false
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if skipNext {
			skipNext = false
			continue
		}
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			if _, consumesValue := goTestValueFlags[trimmed]; consumesValue {
				skipNext = true
			}
			continue
		}
		packagePatterns = append(packagePatterns, trimmed)
	}

	if len(packagePatterns) == 0 {
		return goCurrentPackageLabelConstant
	}
	return strings.Join(packagePatterns, goPackageListSeparatorConstant)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
