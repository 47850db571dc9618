package testevents

import (
	"strings"

	"github.com/temirov/graphene/internal/browser"
)

const (
	configurationBrowserKeyConstant          = "browser"
	configurationEchoKeyConstant             = "echo"
	configurationCommandKeyConstant          = "command"
	configurationWorkingDirectoryKeyConstant = "working_directory"
)

// CommandConfiguration captures configuration values for the relay command.
// Command is launched when no command is given on the command line; when both
// are empty the relay reads standard input.
type CommandConfiguration struct {
	Browser          browser.Configuration `mapstructure:"browser"`
	Echo             bool                  `mapstructure:"echo"`
	Command          []string              `mapstructure:"command"`
	WorkingDirectory string                `mapstructure:"working_directory"`
}

// DefaultCommandConfiguration provides baseline configuration values for the relay.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Browser:          browser.DefaultConfiguration(),
		Echo:             true,
		Command:          nil,
		WorkingDirectory: "",
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	values := browser.DefaultConfigurationValues(rootKey + "." + configurationBrowserKeyConstant)
	values[rootKey+"."+configurationEchoKeyConstant] = defaults.Echo
	values[rootKey+"."+configurationCommandKeyConstant] = []string{}
	values[rootKey+"."+configurationWorkingDirectoryKeyConstant] = defaults.WorkingDirectory
	return values
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Browser = configuration.Browser.Sanitize()
	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	sanitized.Command = sanitizeCommand(configuration.Command)

	return sanitized
}

func sanitizeCommand(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
