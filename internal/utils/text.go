// internal/utils/text.go
package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase normalizes word-initial letters to uppercase and the rest to
// lowercase ("mcAfee internet SECURITY" -> "Mcafee Internet Security").
// Names and descriptions are normalized at the boundary so uniqueness
// checks compare like with like. Casers are stateful, so one is built
// per call rather than shared.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
