package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s with full Unicode case mapping. A Caser keeps state, so
// one is built per call.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
