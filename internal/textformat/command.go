package textformat

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	commandUseConstant                    = "format <template> [argument...]"
	commandShortDescriptionConstant       = "Substitute arguments into a simplified message template"
	commandLongDescriptionConstant        = "format replaces {} placeholders in argument order and {N} placeholders by argument position, renumbering unresolved indexed placeholders by the argument count."
	commandExecutionErrorTemplateConstant = "format failed: %w"
	missingTemplateMessageConstant        = "format requires a template argument"
	flagValuesFileNameConstant            = "values-file"
	flagValuesFileDescriptionConstant     = "YAML file containing a sequence of additional arguments appended after positional arguments"
	valuesFileReadErrorTemplateConstant   = "unable to read values file %s: %w"
	valuesFileParseErrorTemplateConstant  = "unable to parse values file %s: %w"
	formatCompletedMessageConstant        = "template formatted"
	logFieldArgumentCountConstant         = "argument_count"
	logFieldValuesFileConstant            = "values_file"
)

var errMissingTemplate = errors.New(missingTemplateMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for template formatting.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
}

// Build constructs the format command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagValuesFileNameConstant, "", flagValuesFileDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errMissingTemplate
	}

	template := arguments[0]
	formatArguments := make([]any, 0, len(arguments)-1)
	for _, positionalArgument := range arguments[1:] {
		formatArguments = append(formatArguments, positionalArgument)
	}

	valuesFilePath, _ := command.Flags().GetString(flagValuesFileNameConstant)
	valuesFilePath = strings.TrimSpace(valuesFilePath)
	if len(valuesFilePath) > 0 {
		fileValues, valuesError := LoadValuesFile(valuesFilePath)
		if valuesError != nil {
			return fmt.Errorf(commandExecutionErrorTemplateConstant, valuesError)
		}
		formatArguments = append(formatArguments, fileValues...)
	}

	formatted, formatError := Format(template, formatArguments...)
	if formatError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, formatError)
	}

	builder.resolveLogger().Debug(
		formatCompletedMessageConstant,
		zap.Int(logFieldArgumentCountConstant, len(formatArguments)),
		zap.String(logFieldValuesFileConstant, valuesFilePath),
	)

	fmt.Fprintln(command.OutOrStdout(), formatted)
	return nil
}

// LoadValuesFile reads a YAML sequence whose elements become format arguments.
// Null elements are preserved so Format reports them as invalid arguments.
func LoadValuesFile(valuesFilePath string) ([]any, error) {
	contentBytes, readError := os.ReadFile(valuesFilePath)
	if readError != nil {
		return nil, fmt.Errorf(valuesFileReadErrorTemplateConstant, valuesFilePath, readError)
	}

	var values []any
	if unmarshalError := yaml.Unmarshal(contentBytes, &values); unmarshalError != nil {
		return nil, fmt.Errorf(valuesFileParseErrorTemplateConstant, valuesFilePath, unmarshalError)
	}

	return values, nil
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
