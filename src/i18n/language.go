package i18n

import (
	"fmt"
	"strings"
)

// Language is one of the catalog's supported content languages.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
	Wolof   Language = "wo"

	// Default is used when no language is requested and as the translation fallback.
	Default = French
)

// Supported lists the languages in their display order.
var Supported = []Language{French, English, Wolof}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case French, English, Wolof:
		return true
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// Parse normalizes a language code such as "EN" or "wo-SN".
func Parse(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	lang := Language(code)
	if !lang.Valid() {
		return "", fmt.Errorf("unsupported language %q", code)
	}
	return lang, nil
}

// ParseOrDefault is Parse with a French fallback for empty or unknown codes.
func ParseOrDefault(code string) Language {
	lang, err := Parse(code)
	if err != nil {
		return Default
	}
	return lang
}

// Column returns the storage column of a localized field, e.g. Column("name_", English) is "name_en".
func Column(prefix string, lang Language) string {
	if !lang.Valid() {
		lang = Default
	}
	return prefix + string(lang)
}
