package browser

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	unsupportedDriverErrorTemplate = "%w: %q"
	scriptSessionOpenedMessage     = "script session opened"
	logFieldDriverConstant         = "driver"
)

// OpenSession opens a session for the configured driver. Console output of the
// script driver goes to output; browser drivers log to the page console.
func OpenSession(executionContext context.Context, configuration Configuration, logger *zap.Logger, output io.Writer) (Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	configuration = configuration.Sanitize()

	switch configuration.Driver {
	case DriverPlaywright:
		playwrightSession, creationError := NewPlaywrightSession(configuration, logger)
		if creationError != nil {
			return nil, creationError
		}
		return playwrightSession, nil
	case DriverChromedp:
		chromeSession, creationError := NewChromeSession(executionContext, configuration, logger)
		if creationError != nil {
			return nil, creationError
		}
		return chromeSession, nil
	case DriverScript:
		scriptEvaluator, creationError := NewScriptEvaluator(output)
		if creationError != nil {
			return nil, creationError
		}
		logger.Debug(scriptSessionOpenedMessage, zap.String(logFieldDriverConstant, configuration.Driver))
		return scriptEvaluator, nil
	default:
		return nil, fmt.Errorf(unsupportedDriverErrorTemplate, ErrUnsupportedDriver, configuration.Driver)
	}
}
