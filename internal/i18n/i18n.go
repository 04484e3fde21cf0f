// Package i18n holds the interface text in Brazilian Portuguese and English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/napele/internal/models"
)

// PortugueseBR is the default interface language.
var PortugueseBR = language.MustParse("pt-BR")

var matcher = language.NewMatcher([]language.Tag{PortugueseBR, language.English})

// Resolve maps a language preference such as "en-US" or "pt" to a supported
// tag. Unknown or empty values resolve to Brazilian Portuguese.
func Resolve(pref string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return PortugueseBR
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return PortugueseBR
	}
	if idx == 1 {
		return language.English
	}
	return PortugueseBR
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// AttributeName returns the display name of a.
func AttributeName(p *message.Printer, a models.Attribute) string {
	return p.Sprintf("attr." + string(a))
}
