package catalog

import (
	_ "embed"
)

//go:embed fallback.en.json
var fallbackEN []byte

//go:embed fallback.fr.json
var fallbackFR []byte

// Fallback returns the embedded catalog for the given locale, so the engine
// stays operational when every remote catalog source is unreachable.
// Unknown locales fall back to English.
func Fallback(locale string) []Definition {
	data := fallbackEN
	if locale == "fr" {
		data = fallbackFR
	}

	defs, err := Parse(data)
	if err != nil {
		// The embedded documents are fixed at build time; a parse failure
		// here is a programming error caught by tests.
		return nil
	}
	return defs
}
