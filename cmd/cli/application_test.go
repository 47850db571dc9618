package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/graphene/cmd/cli"
	"github.com/temirov/graphene/internal/browser"
	"github.com/temirov/graphene/internal/testevents"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testLogLevelEnvironmentName       = "GRAPHENE_COMMON_LOG_LEVEL"
	testRelayEchoEnvironmentName      = "GRAPHENE_TOOLS_RELAY_ECHO"
	testQuietLogLevelConstant         = "error"
	testSubtestNameTemplateConstant   = "%d_%s"
	testRelayConfigurationTemplate    = "tools:\n  relay:\n    echo: %t\n    browser:\n      driver: %s\n"
	testStartedBannerConstant         = "########## STARTED: login.TestLogin ##########"
	testFailureBannerConstant         = "########## FAILURE: login.TestLogout ##########"
	testEchoedOutputConstant          = "=== RUN   TestLogin"
	testEventStreamConstant           = `{"Action":"run","Package":"example.com/shop/login","Test":"TestLogin"}
{"Action":"output","Package":"example.com/shop/login","Test":"TestLogin","Output":"=== RUN   TestLogin\n"}
{"Action":"pass","Package":"example.com/shop/login","Test":"TestLogin","Elapsed":0.25}
{"Action":"run","Package":"example.com/shop/login","Test":"TestLogout"}
{"Action":"fail","Package":"example.com/shop/login","Test":"TestLogout","Elapsed":1.5}
{"Action":"fail","Package":"example.com/shop/login","Elapsed":2}
`
)

func TestApplicationFormatCommand(testInstance *testing.T) {
	testInstance.Setenv(testLogLevelEnvironmentName, testQuietLogLevelConstant)

	testCases := []struct {
		name           string
		arguments      []string
		expectedOutput string
	}{
		{name: "anonymous_and_indexed", arguments: []string{"format", "{} {1}", "a"}, expectedOutput: "a {0}\n"},
		{name: "chained_renumbering", arguments: []string{"format", "{0} waited {2} for {1}", "Alice", "Bob"}, expectedOutput: "Alice waited {0} for Bob\n"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			application := cli.NewApplication()
			application.SetArguments(testCase.arguments)
			application.SetOutput(outputBuffer, &bytes.Buffer{})

			require.NoError(testInstance, application.Execute())
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestApplicationRelayCommand(testInstance *testing.T) {
	testInstance.Setenv(testLogLevelEnvironmentName, testQuietLogLevelConstant)

	testCases := []struct {
		name               string
		configuredEcho     bool
		arguments          []string
		expectEchoedOutput bool
	}{
		{name: "configuration_enables_echo", configuredEcho: true, arguments: []string{"relay"}, expectEchoedOutput: true},
		{name: "configuration_disables_echo", configuredEcho: false, arguments: []string{"relay"}, expectEchoedOutput: false},
		{name: "separated_toggle_value_overrides", configuredEcho: true, arguments: []string{"relay", "--echo", "no"}, expectEchoedOutput: false},
		{name: "inline_toggle_value_overrides", configuredEcho: false, arguments: []string{"relay", "--echo=yes"}, expectEchoedOutput: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			configurationPath := writeConfigurationFile(testInstance, fmt.Sprintf(testRelayConfigurationTemplate, testCase.configuredEcho, browser.DriverScript))

			outputBuffer := &bytes.Buffer{}
			application := cli.NewApplication()
			application.SetArguments(append([]string{"--config", configurationPath}, testCase.arguments...))
			application.SetOutput(outputBuffer, &bytes.Buffer{})
			application.SetInput(strings.NewReader(testEventStreamConstant))

			require.NoError(testInstance, application.Execute())

			output := outputBuffer.String()
			require.Contains(testInstance, output, testStartedBannerConstant)
			require.Contains(testInstance, output, testFailureBannerConstant)
			if testCase.expectEchoedOutput {
				require.Contains(testInstance, output, testEchoedOutputConstant)
			} else {
				require.NotContains(testInstance, output, testEchoedOutputConstant)
			}
			require.Equal(testInstance, configurationPath, application.ConfigurationFileUsed())
		})
	}
}

func TestApplicationRelayRejectsUnsupportedDriver(testInstance *testing.T) {
	testInstance.Setenv(testLogLevelEnvironmentName, testQuietLogLevelConstant)
	configurationPath := writeConfigurationFile(testInstance, fmt.Sprintf(testRelayConfigurationTemplate, true, "selenium"))

	application := cli.NewApplication()
	application.SetArguments([]string{"--config", configurationPath, "relay"})
	application.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	application.SetInput(strings.NewReader(testEventStreamConstant))

	require.ErrorIs(testInstance, application.Execute(), browser.ErrUnsupportedDriver)
}

func TestApplicationEnvironmentOverridesConfiguration(testInstance *testing.T) {
	testInstance.Setenv(testLogLevelEnvironmentName, testQuietLogLevelConstant)
	testInstance.Setenv(testRelayEchoEnvironmentName, "false")

	outputBuffer := &bytes.Buffer{}
	application := cli.NewApplication()
	application.SetArguments([]string{"relay"})
	application.SetOutput(outputBuffer, &bytes.Buffer{})
	application.SetInput(strings.NewReader(testEventStreamConstant))

	require.NoError(testInstance, application.Execute())
	require.False(testInstance, application.Configuration().Tools.Relay.Echo)
	require.Equal(testInstance, testQuietLogLevelConstant, application.Configuration().Common.LogLevel)
	require.NotContains(testInstance, outputBuffer.String(), testEchoedOutputConstant)
}

func TestEmbeddedDefaultConfigurationMatchesRelayDefaults(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, viperInstance.Unmarshal(&configuration, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())))

	defaults := testevents.DefaultCommandConfiguration()
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.Equal(testInstance, defaults.Echo, configuration.Tools.Relay.Echo)
	require.Equal(testInstance, defaults.Browser, configuration.Tools.Relay.Browser)
	require.Equal(testInstance, 30*time.Second, configuration.Tools.Relay.Browser.Timeout)
	require.Empty(testInstance, configuration.Tools.Relay.Command)
}

func writeConfigurationFile(testInstance *testing.T, configurationContent string) string {
	testInstance.Helper()

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))
	return configurationPath
}
