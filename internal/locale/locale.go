// Package locale negotiates the response language and formats amounts and
// labels for it.
package locale

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Supported lists the locales responses can be formatted for.
var Supported = []language.Tag{
	language.MustParse("en-IN"),
	language.AmericanEnglish,
	language.BritishEnglish,
	language.Hindi,
	language.Marathi,
}

// Negotiator picks a supported locale from request hints.
type Negotiator struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
}

// NewNegotiator builds a Negotiator whose default is fallback. An unparsable
// fallback falls back to en-IN.
func NewNegotiator(fallback string) *Negotiator {
	def, err := language.Parse(strings.TrimSpace(fallback))
	if err != nil {
		def = Supported[0]
	}
	tags := append([]language.Tag{def}, Supported...)
	return &Negotiator{fallback: def, tags: tags, matcher: language.NewMatcher(tags)}
}

// Default returns the fallback locale.
func (n *Negotiator) Default() language.Tag {
	return n.fallback
}

// Negotiate resolves explicit locale, Accept-Language and country hints in
// that order. Country is an ISO 3166 code, typically from GeoIP.
func (n *Negotiator) Negotiate(explicit, acceptLanguage, country string) language.Tag {
	for _, hint := range []string{explicit, acceptLanguage} {
		if strings.TrimSpace(hint) == "" {
			continue
		}
		if tag, ok := n.match(hint); ok {
			return tag
		}
	}
	if region, err := language.ParseRegion(strings.TrimSpace(country)); err == nil {
		if tag, err := language.Compose(language.English, region); err == nil {
			if matched, ok := n.match(tag.String()); ok {
				return matched
			}
		}
	}
	return n.fallback
}

func (n *Negotiator) match(hint string) (language.Tag, bool) {
	_, idx, conf := n.matcher.Match(parseHint(hint)...)
	if conf == language.No {
		return language.Und, false
	}
	return n.tags[idx], true
}

func parseHint(hint string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(hint)
	if err != nil || len(tags) == 0 {
		if tag, err := language.Parse(hint); err == nil {
			return []language.Tag{tag}
		}
		return nil
	}
	return tags
}

// Formatter renders numbers and labels for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	title   cases.Caser
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{tag: tag, printer: message.NewPrinter(tag), title: cases.Title(tag)}
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Amount formats v with locale digit grouping and at most two decimals.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Rupees prefixes the formatted amount with the rupee sign.
func (f *Formatter) Rupees(v float64) string {
	return "₹" + f.Amount(v)
}

// Percent formats a 0-100 value as a whole percentage.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprint(number.Percent(v/100, number.MaxFractionDigits(0)))
}

// Label title-cases an enum value such as a donation type.
func (f *Formatter) Label(s string) string {
	return f.title.String(s)
}
