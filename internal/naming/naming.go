// Package naming implements the naming-convention collaborator used by the
// model factories and the template engine.
package naming

import (
	"strings"
	"unicode"

	"github.com/gobuffalo/flect"
)

// Convention selects a casing transform.
type Convention int

const (
	None Convention = iota
	Pascal
	Camel
	Snake
	Kebab
	Title
	AllCaps
)

func (c Convention) String() string {
	switch c {
	case Pascal:
		return "pascal"
	case Camel:
		return "camel"
	case Snake:
		return "snake"
	case Kebab:
		return "kebab"
	case Title:
		return "title"
	case AllCaps:
		return "allcaps"
	default:
		return "none"
	}
}

// ParseConvention maps a convention name to its value. Unknown names map to None.
func ParseConvention(s string) Convention {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pascal", "pascalcase":
		return Pascal
	case "camel", "camelcase":
		return Camel
	case "snake", "snakecase":
		return Snake
	case "kebab", "kebabcase":
		return Kebab
	case "title", "titlecase":
		return Title
	case "allcaps", "upper":
		return AllCaps
	default:
		return None
	}
}

// Converter transforms a word into a naming convention.
type Converter interface {
	Convert(conv Convention, word string, pluralize bool) string
}

// Flect is the Converter backed by github.com/gobuffalo/flect. Pascal and
// Camel follow flect's acronym table, so "customer_id" becomes "CustomerID".
type Flect struct{}

// NewConverter returns the default Converter.
func NewConverter() Converter {
	return Flect{}
}

// Convert pluralizes (when asked) and then applies the convention.
func (Flect) Convert(conv Convention, word string, pluralize bool) string {
	if word == "" {
		return ""
	}
	if pluralize {
		word = flect.Pluralize(word)
	}
	switch conv {
	case Pascal:
		return flect.Pascalize(word)
	case Camel:
		return flect.Camelize(word)
	case Snake:
		return flect.Underscore(word)
	case Kebab:
		return flect.Dasherize(word)
	case Title:
		return flect.Titleize(word)
	case AllCaps:
		return strings.ToUpper(flect.Underscore(word))
	default:
		return word
	}
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if unicode.IsUpper(runes[0]) {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Uncapitalize lower-cases the first letter and leaves the rest untouched.
func Uncapitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
