package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var turkishLower = cases.Lower(language.Turkish)

// NormalizeUsername lowercases with Turkish casing rules (İ→i, I→ı) before
// ASCII-folding, so "İhsan" and "ihsan" resolve to the same account.
// strings.ToLower alone mishandles the dotless-ı pair.
func NormalizeUsername(username string) string {
	return unidecode.Unidecode(turkishLower.String(strings.TrimSpace(username)))
}
