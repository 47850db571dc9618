package textformat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	placeholderPatternConstant              = `\{([0-9]*)\}`
	indexedPlaceholderTemplateConstant      = "{%d}"
	leadingZeroDigitConstant                = '0'
	invalidArgumentMessageConstant          = "invalid format argument"
	invalidArgumentPositionTemplateConstant = "%w: argument %d is nil"
)

// ErrInvalidArgument reports an absent (nil) argument supplied to Format.
var ErrInvalidArgument = errors.New(invalidArgumentMessageConstant)

var placeholderExpression = regexp.MustCompile(placeholderPatternConstant)

// Format substitutes arguments into the template.
//
// The k-th anonymous placeholder receives the k-th argument and every `{i}`
// receives the argument at position i. Indexed placeholders beyond the
// argument count are renumbered to `{N - len(arguments)}`. Argument text is
// inserted verbatim and never reinterpreted as a placeholder.
func Format(template string, arguments ...any) (string, error) {
	renderedArguments := make([]string, len(arguments))
	for argumentIndex, argument := range arguments {
		if argument == nil {
			return "", fmt.Errorf(invalidArgumentPositionTemplateConstant, ErrInvalidArgument, argumentIndex)
		}
		renderedArguments[argumentIndex] = fmt.Sprint(argument)
	}

	if len(renderedArguments) == 0 {
		return template, nil
	}

	placeholderMatches := placeholderExpression.FindAllStringSubmatchIndex(template, -1)
	if len(placeholderMatches) == 0 {
		return template, nil
	}

	delta := len(renderedArguments)
	anonymousOrdinal := 0

	var resultBuilder strings.Builder
	resultBuilder.Grow(len(template))

	previousMatchEnd := 0
	for _, placeholderMatch := range placeholderMatches {
		resultBuilder.WriteString(template[previousMatchEnd:placeholderMatch[0]])
		previousMatchEnd = placeholderMatch[1]

		placeholderText := template[placeholderMatch[0]:placeholderMatch[1]]
		indexDigits := template[placeholderMatch[2]:placeholderMatch[3]]

		if len(indexDigits) == 0 {
			if anonymousOrdinal < delta {
				resultBuilder.WriteString(renderedArguments[anonymousOrdinal])
			} else {
				resultBuilder.WriteString(placeholderText)
			}
			anonymousOrdinal++
			continue
		}

		placeholderIndex, indexValid := parsePlaceholderIndex(indexDigits)
		if !indexValid {
			resultBuilder.WriteString(placeholderText)
			continue
		}

		if placeholderIndex < delta {
			resultBuilder.WriteString(renderedArguments[placeholderIndex])
			continue
		}

		resultBuilder.WriteString(fmt.Sprintf(indexedPlaceholderTemplateConstant, placeholderIndex-delta))
	}
	resultBuilder.WriteString(template[previousMatchEnd:])

	return resultBuilder.String(), nil
}

// MustFormat is like Format but panics when an argument is invalid.
func MustFormat(template string, arguments ...any) string {
	formatted, formatError := Format(template, arguments...)
	if formatError != nil {
		panic(formatError)
	}
	return formatted
}

// parsePlaceholderIndex accepts canonical decimal indices only; "{01}" never
// matches argument 1, and indices overflowing int are left untouched.
func parsePlaceholderIndex(indexDigits string) (int, bool) {
	if len(indexDigits) > 1 && indexDigits[0] == leadingZeroDigitConstant {
		return 0, false
	}
	placeholderIndex, parseError := strconv.Atoi(indexDigits)
	if parseError != nil {
		return 0, false
	}
	return placeholderIndex, true
}
