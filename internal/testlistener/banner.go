package testlistener

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/temirov/graphene/internal/textformat"
)

const (
	bannerHashesConstant                 = "##########"
	bannerRuleCharacterConstant          = "#"
	bannerMessageTemplateConstant        = "{0} {1}: {2} {0}"
	bannerLinesTemplateConstant          = "{0}\n{1}\n{0}"
	bannerScriptTemplateConstant         = "/*\n{0}\n*/\nconsole.info({1});"
	unknownStatusNameConstant            = "Unknown"
	commentTerminatorConstant            = "*/"
	commentTerminatorReplacementConstant = "* /"
)

// BannerRenderer produces the status banner and the script that logs it.
type BannerRenderer struct {
	statusNames *StatusNames
}

// NewBannerRenderer constructs a renderer resolving status names through statusNames.
func NewBannerRenderer(statusNames *StatusNames) *BannerRenderer {
	if statusNames == nil {
		statusNames = NewStatusNames()
	}
	return &BannerRenderer{statusNames: statusNames}
}

// Message renders the single banner line, e.g. "########## SUCCESS: pkg.TestName ##########".
func (renderer *BannerRenderer) Message(result TestResult) string {
	statusName, statusKnown := renderer.statusNames.Name(result.Status)
	if !statusKnown {
		statusName = unknownStatusNameConstant
	}
	return textformat.MustFormat(bannerMessageTemplateConstant, bannerHashesConstant, strings.ToUpper(statusName), result.Identity.QualifiedName())
}

// Render frames the banner message between rules of the same width.
func (renderer *BannerRenderer) Render(result TestResult) string {
	message := renderer.Message(result)
	rule := strings.Repeat(bannerRuleCharacterConstant, utf8.RuneCountInString(message))
	return textformat.MustFormat(bannerLinesTemplateConstant, rule, message)
}

// Script wraps the banner in a block comment, which drivers record in their
// command logs, followed by a console.info call carrying the same text.
func (renderer *BannerRenderer) Script(result TestResult) string {
	banner := renderer.Render(result)
	commentBody := strings.ReplaceAll(banner, commentTerminatorConstant, commentTerminatorReplacementConstant)
	literal, _ := json.Marshal(banner)
	return textformat.MustFormat(bannerScriptTemplateConstant, commentBody, string(literal))
}
