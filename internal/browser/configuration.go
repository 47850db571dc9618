package browser

import (
	"strings"
	"time"
)

const (
	// DriverPlaywright selects the playwright-go session.
	DriverPlaywright = "playwright"
	// DriverChromedp selects the chromedp session.
	DriverChromedp = "chromedp"
	// DriverScript selects the embedded JavaScript runtime.
	DriverScript = "script"

	// BrowserChromium launches Chromium through playwright.
	BrowserChromium = "chromium"
	// BrowserFirefox launches Firefox through playwright.
	BrowserFirefox = "firefox"
	// BrowserWebKit launches WebKit through playwright.
	BrowserWebKit = "webkit"

	defaultEvaluationTimeout = 30 * time.Second

	configurationDriverKeyConstant       = "driver"
	configurationBrowserNameKeyConstant  = "browser_name"
	configurationStartURLKeyConstant     = "start_url"
	configurationRemoteURLKeyConstant    = "remote_url"
	configurationHeadlessKeyConstant     = "headless"
	configurationPreinstalledKeyConstant = "preinstalled"
	configurationTimeoutKeyConstant      = "timeout"
)

// Configuration describes how a browser session is opened.
type Configuration struct {
	Driver       string        `mapstructure:"driver"`
	BrowserName  string        `mapstructure:"browser_name"`
	StartURL     string        `mapstructure:"start_url"`
	RemoteURL    string        `mapstructure:"remote_url"`
	Headless     bool          `mapstructure:"headless"`
	Preinstalled bool          `mapstructure:"preinstalled"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// DefaultConfiguration returns the baseline session configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Driver:      DriverScript,
		BrowserName: BrowserChromium,
		Headless:    true,
		Timeout:     defaultEvaluationTimeout,
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationDriverKeyConstant:       defaults.Driver,
		rootKey + "." + configurationBrowserNameKeyConstant:  defaults.BrowserName,
		rootKey + "." + configurationStartURLKeyConstant:     defaults.StartURL,
		rootKey + "." + configurationRemoteURLKeyConstant:    defaults.RemoteURL,
		rootKey + "." + configurationHeadlessKeyConstant:     defaults.Headless,
		rootKey + "." + configurationPreinstalledKeyConstant: defaults.Preinstalled,
		rootKey + "." + configurationTimeoutKeyConstant:      defaults.Timeout.String(),
	}
}

// Sanitize normalizes names and fills unset values from the defaults.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Driver = strings.ToLower(strings.TrimSpace(sanitized.Driver))
	if len(sanitized.Driver) == 0 {
		sanitized.Driver = defaults.Driver
	}

	sanitized.BrowserName = strings.ToLower(strings.TrimSpace(sanitized.BrowserName))
	if len(sanitized.BrowserName) == 0 {
		sanitized.BrowserName = defaults.BrowserName
	}

	sanitized.StartURL = strings.TrimSpace(sanitized.StartURL)
	sanitized.RemoteURL = strings.TrimSpace(sanitized.RemoteURL)

	if sanitized.Timeout <= 0 {
		sanitized.Timeout = defaults.Timeout
	}

	return sanitized
}
