package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un texto para comparación: minúsculas, sin acentos y sin
// espacios sobrantes ("José Pérez " == "jose perez").
func Fold(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains indica si s contiene substr bajo la normalización de Fold.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
